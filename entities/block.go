package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Block struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	FarmID         string    `gorm:"index" json:"farm_id"`
	Name           string    `json:"name"`
	Variety        string    `json:"variety"`
	PlantingYear   *int      `json:"planting_year"`
	SoilType       string    `json:"soil_type"`
	IrrigationType string    `json:"irrigation_type"` // drip|flood|sprinkler|none
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
