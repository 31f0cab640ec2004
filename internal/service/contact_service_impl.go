package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/pkg/contactform"
	"github.com/google/uuid"
)

// TimestampLayout is the millisecond ISO-8601 layout used for server-assigned
// timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo  repository.ContactRepository
	now   func() time.Time
	newID func() (string, error)
}

// ContactOption customizes a ContactService.
type ContactOption func(*contactServiceImpl)

// WithClock replaces the clock used for default timestamps.
func WithClock(now func() time.Time) ContactOption {
	return func(s *contactServiceImpl) { s.now = now }
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(newID func() (string, error)) ContactOption {
	return func(s *contactServiceImpl) { s.newID = newID }
}

// NewContactService creates a ContactService backed by the given repository.
// Ids are UUIDv7, which sort in creation order.
func NewContactService(repo repository.ContactRepository, opts ...ContactOption) ContactService {
	s := &contactServiceImpl{
		repo: repo,
		now:  time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit applies the same field rules as the browser form, then stores the
// normalized submission with status "new".
func (s *contactServiceImpl) Submit(ctx context.Context, req model.SubmitRequest) (*model.ContactSubmission, error) {
	if contactform.MissingRequired(req.Fields) {
		return nil, &ValidationError{Missing: true}
	}
	fields := contactform.Normalize(req.Fields)
	if errs := contactform.Validate(fields); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	timestamp, err := s.timestamp(req.Timestamp)
	if err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	c := &model.ContactSubmission{
		ID:        id,
		Name:      fields.Name,
		Email:     fields.Email,
		Subject:   fields.Subject,
		Message:   fields.Message,
		Timestamp: timestamp,
		Status:    model.StatusNew,
	}
	if err := s.repo.Append(ctx, c); err != nil {
		return nil, fmt.Errorf("append contact: %w", err)
	}
	return c, nil
}

// timestamp keeps a client timestamp when it parses as RFC 3339 and falls
// back to the current UTC time when none was sent.
func (s *contactServiceImpl) timestamp(client string) (string, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return s.now().UTC().Format(TimestampLayout), nil
	}
	if _, err := time.Parse(time.RFC3339Nano, client); err != nil {
		return "", ErrInvalidTimestamp
	}
	return client, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.RemoveByID(ctx, id); err != nil {
		return fmt.Errorf("remove contact %s: %w", id, err)
	}
	return nil
}
