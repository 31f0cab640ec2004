package service

import (
	"context"
	"errors"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/pkg/contactform"
)

// Messages surfaced to callers of the contact API.
const (
	MsgFieldsRequired   = "All fields are required"
	MsgInvalidTimestamp = "Invalid timestamp"
)

// ErrInvalidTimestamp is returned when the client supplied a timestamp that
// is not ISO-8601.
var ErrInvalidTimestamp = errors.New(MsgInvalidTimestamp)

// ValidationError describes a submission the service refused to store.
type ValidationError struct {
	// Missing is true when at least one required field was blank.
	Missing bool
	// Fields holds the per-field rule violations when Missing is false.
	Fields contactform.Errors
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return MsgFieldsRequired
	}
	return e.Fields.First()
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and normalizes req, assigns id, timestamp and status,
	// and stores the result.
	Submit(ctx context.Context, req model.SubmitRequest) (*model.ContactSubmission, error)

	// List returns every stored submission in insertion order.
	List(ctx context.Context) ([]*model.ContactSubmission, error)

	// Delete removes a submission. repository.ErrNotFound is returned when
	// no such submission exists.
	Delete(ctx context.Context, id string) error
}
