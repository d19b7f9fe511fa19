package history

import "context"

// Repository stores and lists transfer records.
type Repository interface {
	// Create persists one transfer record.
	Create(ctx context.Context, t *Transfer) error

	// SelectRecent returns up to limit transfers, newest first.
	SelectRecent(ctx context.Context, limit int) ([]*Transfer, error)
}
