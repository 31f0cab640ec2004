package repository

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// DB checks that the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Append stores a new submission. The id must not already exist.
	Append(ctx context.Context, c *model.ContactSubmission) error

	// List returns every stored submission in insertion order. An
	// uninitialized store yields an empty slice and no error.
	List(ctx context.Context) ([]*model.ContactSubmission, error)

	// RemoveByID deletes the submission with the given id, returning
	// ErrNotFound when there is no such submission.
	RemoveByID(ctx context.Context, id string) error
}

// ContactStore is a ContactRepository that can report its own health.
type ContactStore interface {
	ContactRepository
	DB
}
