package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Farm struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `json:"name"`
	Lat               float64   `json:"lat"`
	Lon               float64   `json:"lon"`
	CountryCode       string    `json:"country_code"`
	PreferredLanguage string    `json:"preferred_language"` // en|hi|es|mr
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (f *Farm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
