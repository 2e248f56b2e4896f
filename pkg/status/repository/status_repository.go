package repository

import "tablegrape/entities"

type StatusRepository interface {
	Create(s *entities.CropStatus) error
	// Latest returns the most recent check-in by recorded time, optionally
	// restricted to one block; nil when the farm has none.
	Latest(farmID string, blockID *string) (*entities.CropStatus, error)
}
