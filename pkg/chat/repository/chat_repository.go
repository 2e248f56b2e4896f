package repository

import "tablegrape/entities"

type ChatRepository interface {
	// EnsureSession creates the session row if it does not exist yet.
	EnsureSession(sessionID, farmID string) error
	SaveMessage(m *entities.ChatMessage) error
	// History returns up to limit messages for a farm ordered by
	// (created_at, id) ascending for stable tie-breaking.
	History(farmID string, limit int) ([]entities.ChatMessage, error)
	// Clear deletes all messages and sessions for a farm and reports the
	// number of messages removed.
	Clear(farmID string) (int64, error)
}
