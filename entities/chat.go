package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FarmID    string    `gorm:"index" json:"farm_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type ChatMessage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FarmID    string    `gorm:"index" json:"farm_id"`
	SessionID string    `gorm:"index" json:"session_id"`
	Role      string    `json:"role"` // user|assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
