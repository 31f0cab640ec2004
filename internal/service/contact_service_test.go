package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/pkg/contactform"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// mockContactRepository is an in-memory stub.
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	appendFunc func(ctx context.Context, c *model.ContactSubmission) error
	listFunc   func(ctx context.Context) ([]*model.ContactSubmission, error)
	removeFunc func(ctx context.Context, id string) error
}

func (m *mockContactRepository) Append(ctx context.Context, c *model.ContactSubmission) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.ContactSubmission{}, nil
}

func (m *mockContactRepository) RemoveByID(ctx context.Context, id string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, id)
	}
	return nil
}

func validRequest() model.SubmitRequest {
	return model.SubmitRequest{Fields: contactform.Fields{
		Name:    "Jo",
		Email:   "a@b.com",
		Subject: "Hello there",
		Message: "This is a test message.",
	}}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_NormalizesAndStores(t *testing.T) {
	var saved *model.ContactSubmission
	mock := &mockContactRepository{
		appendFunc: func(ctx context.Context, c *model.ContactSubmission) error {
			saved = c
			return nil
		},
	}
	svc := NewContactService(mock)

	req := model.SubmitRequest{Fields: contactform.Fields{
		Name:    "  Jo  ",
		Email:   " Jo@Example.COM ",
		Subject: " Hello there ",
		Message: "  This is a test message.  ",
	}}
	got, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Append to be called")
	}
	if got != saved {
		t.Error("expected Submit to return the stored submission")
	}
	if saved.Name != "Jo" || saved.Subject != "Hello there" || saved.Message != "This is a test message." {
		t.Errorf("fields not trimmed: %+v", saved)
	}
	if saved.Email != "jo@example.com" {
		t.Errorf("expected email=jo@example.com, got %q", saved.Email)
	}
	if saved.Status != model.StatusNew {
		t.Errorf("expected status=new, got %q", saved.Status)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("expected a UUID id, got %q", saved.ID)
	}
}

// TestContactService_Submit_DefaultsTimestamp verifies the service stamps the
// submission with the current time when the client sent none.
func TestContactService_Submit_DefaultsTimestamp(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.FixedZone("JST", 9*3600))
	svc := NewContactService(&mockContactRepository{}, WithClock(func() time.Time { return fixed }))

	got, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Timestamp != "2024-05-05T22:08:09.123Z" {
		t.Errorf("expected UTC millisecond timestamp, got %q", got.Timestamp)
	}
}

func TestContactService_Submit_KeepsClientTimestamp(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	req := validRequest()
	req.Timestamp = "2023-12-31T23:59:59.999Z"
	got, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Timestamp != req.Timestamp {
		t.Errorf("expected client timestamp to be kept, got %q", got.Timestamp)
	}
}

func TestContactService_Submit_InvalidTimestamp(t *testing.T) {
	called := false
	svc := NewContactService(&mockContactRepository{
		appendFunc: func(ctx context.Context, c *model.ContactSubmission) error {
			called = true
			return nil
		},
	})

	req := validRequest()
	req.Timestamp = "yesterday"
	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}
	if called {
		t.Error("Append must not be called for an invalid timestamp")
	}
}

func TestContactService_Submit_MissingField(t *testing.T) {
	for _, field := range []string{"name", "email", "subject", "message"} {
		called := false
		svc := NewContactService(&mockContactRepository{
			appendFunc: func(ctx context.Context, c *model.ContactSubmission) error {
				called = true
				return nil
			},
		})

		req := validRequest()
		req.Fields.Set(field, "  ")
		_, err := svc.Submit(context.Background(), req)

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Missing {
			t.Errorf("%s: expected missing-field ValidationError, got %v", field, err)
			continue
		}
		if verr.Error() != MsgFieldsRequired {
			t.Errorf("%s: expected %q, got %q", field, MsgFieldsRequired, verr.Error())
		}
		if called {
			t.Errorf("%s: Append must not be called", field)
		}
	}
}

// TestContactService_Submit_RuleViolation verifies the server enforces the
// same length and format rules as the browser form.
func TestContactService_Submit_RuleViolation(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	req := model.SubmitRequest{Fields: contactform.Fields{
		Name:    "Jo",
		Email:   "bad-email",
		Subject: "Hi",
		Message: "short",
	}}
	_, err := svc.Submit(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Missing {
		t.Error("expected rule violation, not missing field")
	}
	if verr.Error() != contactform.MsgEmail {
		t.Errorf("expected first message %q, got %q", contactform.MsgEmail, verr.Error())
	}
	if len(verr.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", verr.Fields)
	}
}

func TestContactService_Submit_IDGeneratorError(t *testing.T) {
	svc := NewContactService(&mockContactRepository{},
		WithIDGenerator(func() (string, error) { return "", errors.New("entropy exhausted") }))

	if _, err := svc.Submit(context.Background(), validRequest()); err == nil {
		t.Error("expected error from id generator")
	}
}

func TestContactService_Submit_RepoError(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		appendFunc: func(ctx context.Context, c *model.ContactSubmission) error {
			return errors.New("disk full")
		},
	})

	_, err := svc.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("persistence failure must not be reported as a validation error")
	}
}

// TestContactService_Submit_UniqueIDs verifies consecutive submissions get
// distinct, increasing ids.
func TestContactService_Submit_UniqueIDs(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 50; i++ {
		got, err := svc.Submit(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[got.ID] {
			t.Fatalf("duplicate id %q", got.ID)
		}
		if got.ID <= prev {
			t.Errorf("id %q not after %q", got.ID, prev)
		}
		seen[got.ID] = true
		prev = got.ID
	}
}

// ---------------------------------------------------------------------------
// List / Delete tests
// ---------------------------------------------------------------------------

func TestContactService_List(t *testing.T) {
	want := []*model.ContactSubmission{{ID: "1"}, {ID: "2"}}
	svc := NewContactService(&mockContactRepository{
		listFunc: func(ctx context.Context) ([]*model.ContactSubmission, error) {
			return want, nil
		},
	})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("unexpected list: %+v", got)
	}
}

func TestContactService_List_Error(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		listFunc: func(ctx context.Context) ([]*model.ContactSubmission, error) {
			return nil, errors.New("read failed")
		},
	})
	if _, err := svc.List(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestContactService_Delete_NotFound(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		removeFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound to be preserved, got %v", err)
	}
}

func TestContactService_Delete_PassesID(t *testing.T) {
	var gotID string
	svc := NewContactService(&mockContactRepository{
		removeFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	})

	if err := svc.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "abc" {
		t.Errorf("expected id=abc, got %q", gotID)
	}
}
