package repository

import (
	"time"

	"tablegrape/entities"
)

// LogbookRepository covers the four append-only observation logs. Recent*
// queries return rows observed at or after since, oldest first, so the last
// element is the most recent entry.
type LogbookRepository interface {
	CreateScouting(l *entities.ScoutingLog) error
	CreateIrrigation(l *entities.IrrigationLog) error
	CreateBrix(s *entities.BrixSample) error
	CreateSpray(l *entities.SprayLog) error

	RecentScouting(farmID string, since time.Time) ([]entities.ScoutingLog, error)
	RecentIrrigation(farmID string, since time.Time) ([]entities.IrrigationLog, error)
	RecentBrix(farmID string, since time.Time) ([]entities.BrixSample, error)
	RecentSpray(farmID string, since time.Time) ([]entities.SprayLog, error)

	LastScouting(farmID string, n int) ([]entities.ScoutingLog, error)
	LastIrrigation(farmID string, n int) ([]entities.IrrigationLog, error)
	LastBrix(farmID string, n int) ([]entities.BrixSample, error)
	// LastPhotoScouting returns the most recent photo-backed scouting entry,
	// nil when there is none.
	LastPhotoScouting(farmID string) (*entities.ScoutingLog, error)
}
