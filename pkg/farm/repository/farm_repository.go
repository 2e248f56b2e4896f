package repository

import "tablegrape/entities"

type FarmRepository interface {
	Create(f *entities.Farm) error
	FindByID(id string) (*entities.Farm, error)
	CreateBlock(b *entities.Block) error
	// ListBlocks returns the farm's blocks; an empty farmID lists all.
	ListBlocks(farmID string) ([]entities.Block, error)
	// PrimaryBlock prefers a block named "Main Block" (or containing "Main"),
	// else the first block; nil when the farm has none.
	PrimaryBlock(farmID string) (*entities.Block, error)
}
