package store

import (
	"context"

	"github.com/pairkeep/pairkeep/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// QueueStore is the durable local queue of mood entries. Entries are written
// here first and uploaded later; synced rows are kept as the local history.
type QueueStore interface {
	// Add records a captured mood. If an entry already exists for the same
	// owner and calendar day it is replaced in place and reset to unsynced,
	// so a day never has two rows.
	Add(ctx context.Context, entry models.MoodEntry) (models.MoodEntry, error)
	// All returns every entry of the owner, oldest first.
	All(ctx context.Context, ownerID string) ([]models.MoodEntry, error)
	// Unsynced returns the entries still waiting for upload, oldest first.
	Unsynced(ctx context.Context, ownerID string) ([]models.MoodEntry, error)
	// ForDay returns the owner's entry for the given calendar day, or nil
	// when the day has none.
	ForDay(ctx context.Context, ownerID, day string) (*models.MoodEntry, error)
	// MarkSynced flags an entry as uploaded and records its remote id.
	MarkSynced(ctx context.Context, localID int64, remoteID string) error
	// PendingCount returns how many entries are waiting for upload.
	PendingCount(ctx context.Context, ownerID string) (int, error)
}
