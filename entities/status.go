package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CropStatus is a point-in-time check-in. Only the most recent one per farm
// (max RecordedAt) is consulted by the planner.
type CropStatus struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	FarmID         string    `gorm:"index" json:"farm_id"`
	BlockID        *string   `json:"block_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	Stage          string    `json:"stage"` // early_growth|flowering|fruit_set|veraison|harvest
	SweetnessBrix  *float64  `json:"sweetness_brix"`
	Cracking       bool      `json:"cracking"`
	Sunburn        bool      `json:"sunburn"`
	MildewSigns    bool      `json:"mildew_signs"`
	BotrytisSigns  bool      `json:"botrytis_signs"`
	PestSigns      bool      `json:"pest_signs"`
	LastIrrigation string    `json:"last_irrigation"` // today|yesterday|2_3_days|4plus_days|dont_know
	LastSpray      string    `json:"last_spray"`      // none|fungus_spray|nutrient_spray|pest_spray|dont_know
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *CropStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Issues lists the active issue flags as names, in a fixed order.
func (s *CropStatus) Issues() []string {
	var out []string
	if s.Cracking {
		out = append(out, "cracking")
	}
	if s.Sunburn {
		out = append(out, "sunburn")
	}
	if s.MildewSigns {
		out = append(out, "mildew")
	}
	if s.BotrytisSigns {
		out = append(out, "botrytis")
	}
	if s.PestSigns {
		out = append(out, "pests")
	}
	return out
}
