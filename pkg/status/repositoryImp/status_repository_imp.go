package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/status/repository"
)

type statusRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StatusRepository { return &statusRepo{db} }

func (r *statusRepo) Create(s *entities.CropStatus) error {
	return r.db.Create(s).Error
}

func (r *statusRepo) Latest(farmID string, blockID *string) (*entities.CropStatus, error) {
	q := r.db.Where("farm_id = ?", farmID)
	if blockID != nil {
		q = q.Where("block_id = ?", *blockID)
	}
	var s entities.CropStatus
	err := q.Order("recorded_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
