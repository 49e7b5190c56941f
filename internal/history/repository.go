package history

import "context"

// Repository defines persistence for activity records.
type Repository interface {
	// Save persists the record and sets r.ID on success.
	Save(ctx context.Context, r *Record) error
	// ListRecent returns the newest records for userID, newest first,
	// capped at limit.
	ListRecent(ctx context.Context, userID string, limit int) ([]*Record, error)
}
