package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(f *entities.Farm) error {
	return r.db.Create(f).Error
}

func (r *farmRepo) FindByID(id string) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) CreateBlock(b *entities.Block) error {
	return r.db.Create(b).Error
}

func (r *farmRepo) ListBlocks(farmID string) ([]entities.Block, error) {
	var out []entities.Block
	q := r.db
	if farmID != "" {
		q = q.Where("farm_id = ?", farmID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *farmRepo) PrimaryBlock(farmID string) (*entities.Block, error) {
	var b entities.Block
	err := r.db.
		Where("farm_id = ? AND (name = ? OR name LIKE ?)", farmID, "Main Block", "%Main%").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.Where("farm_id = ?", farmID).First(&b).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
