package repository

import (
	"context"

	"github.com/thorsignia/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Insert persists a new submission as a single statement and populates
	// c.ID and c.CreatedAt. It either commits fully or stores nothing.
	Insert(ctx context.Context, c *model.Contact) error

	// List returns all submissions, newest first.
	List(ctx context.Context) ([]*model.Contact, error)

	// GetByID returns one submission or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.Contact, error)

	// Count returns the number of stored submissions.
	Count(ctx context.Context) (int, error)
}
