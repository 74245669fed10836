package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists prediction history
type Repository interface {
	// Create inserts a new history entry
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves a history entry by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListSince retrieves entries of a kind created since a specific time
	ListSince(ctx context.Context, kind Kind, since time.Time) ([]Entry, error)
}
