package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append-only observation records. The planner only ever reads counts and
// most-recent-by-time inside a rolling window; nothing mutates them after
// creation.

type ScoutingLog struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	FarmID     string    `gorm:"index" json:"farm_id"`
	BlockID    *string   `json:"block_id"`
	ObservedAt time.Time `json:"observed_at"`
	PhotoPath  *string   `json:"photo_path"`
	IssueType  string    `json:"issue_type"`
	Severity   int       `json:"severity"` // 0-3
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func (l *ScoutingLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type IrrigationLog struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	FarmID      string    `gorm:"index" json:"farm_id"`
	BlockID     *string   `json:"block_id"`
	IrrigatedAt time.Time `json:"irrigated_at"`
	AmountMM    *float64  `json:"amount_mm"`
	DurationMin *int      `json:"duration_min"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *IrrigationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type BrixSample struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	FarmID        string    `gorm:"index" json:"farm_id"`
	BlockID       *string   `json:"block_id"`
	SampledAt     time.Time `json:"sampled_at"`
	Brix          float64   `json:"brix"`
	FirmnessScore *int      `json:"firmness_score"` // 1-5
	BerrySizeMM   *float64  `json:"berry_size_mm"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *BrixSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SprayLog struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	FarmID      string    `gorm:"index" json:"farm_id"`
	BlockID     *string   `json:"block_id"`
	SprayedAt   time.Time `json:"sprayed_at"`
	ProductName string    `json:"product_name"`
	TargetIssue string    `json:"target_issue"`
	PHIDays     *int      `json:"phi_days"`  // pre-harvest interval
	REIHours    *int      `json:"rei_hours"` // re-entry interval
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *SprayLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
