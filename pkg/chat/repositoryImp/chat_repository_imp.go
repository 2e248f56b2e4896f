package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"tablegrape/entities"
	"tablegrape/pkg/chat/repository"
)

type chatRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChatRepository { return &chatRepo{db} }

func (r *chatRepo) EnsureSession(sessionID, farmID string) error {
	var s entities.ChatSession
	err := r.db.First(&s, "id = ?", sessionID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&entities.ChatSession{ID: sessionID, FarmID: farmID}).Error
}

func (r *chatRepo) SaveMessage(m *entities.ChatMessage) error {
	return r.db.Create(m).Error
}

func (r *chatRepo) History(farmID string, limit int) ([]entities.ChatMessage, error) {
	var out []entities.ChatMessage
	err := r.db.Where("farm_id = ?", farmID).
		Order("created_at ASC, id ASC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *chatRepo) Clear(farmID string) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("farm_id = ?", farmID).Delete(&entities.ChatMessage{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Where("farm_id = ?", farmID).Delete(&entities.ChatSession{}).Error
	})
	return deleted, err
}
