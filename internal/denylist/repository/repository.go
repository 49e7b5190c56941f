// Package repository defines persistence for denylist items.
package repository

import (
	"context"

	"jiaa/data-service/internal/denylist/domain"
)

// Repository defines persistence for denylist items.
type Repository interface {
	// Get returns the item for appName, or nil if not found. Errors only on
	// database failures, not on missing rows.
	Get(ctx context.Context, appName string) (*domain.Item, error)
	// Upsert inserts the item or replaces the existing row for its AppName.
	Upsert(ctx context.Context, item *domain.Item) error
	// List returns all items ordered by report count descending.
	List(ctx context.Context) ([]*domain.Item, error)
	// UpdateStatus sets the review status for appName. Returns false when no
	// such item exists.
	UpdateStatus(ctx context.Context, appName string, status domain.Status) (bool, error)
	// Delete removes the item. Returns false when no such item exists.
	Delete(ctx context.Context, appName string) (bool, error)
}
