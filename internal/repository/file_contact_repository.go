package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/storage"
)

// ListingKey is the consolidated listing of every stored submission.
const ListingKey = "contacts_list.json"

// RecordKey returns the key of the standalone document for one submission.
func RecordKey(id string) string {
	return "contact_" + id + ".json"
}

// FileContactRepository stores each submission as its own JSON document plus
// one consolidated listing document. The listing is authoritative for List
// and RemoveByID; the per-record documents are an export of each submission.
type FileContactRepository struct {
	store storage.Storage

	// mu serializes read-modify-write cycles on the listing.
	mu sync.RWMutex
}

// NewFileContactRepository creates a FileContactRepository backed by store.
func NewFileContactRepository(store storage.Storage) *FileContactRepository {
	return &FileContactRepository{store: store}
}

var _ ContactStore = (*FileContactRepository)(nil)

// Ping checks the underlying storage.
func (r *FileContactRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// Append writes the record document, then appends the record to the listing.
func (r *FileContactRepository) Append(ctx context.Context, c *model.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.readListing(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	for _, existing := range list {
		if existing.ID == c.ID {
			return ErrDuplicateID
		}
	}

	record, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}
	if err := r.store.Write(ctx, RecordKey(c.ID), record); err != nil {
		return err
	}

	list = append(list, c)
	if err := r.writeListing(ctx, list); err != nil {
		// Keep the record files in step with the listing.
		_ = r.store.Delete(ctx, RecordKey(c.ID))
		return err
	}
	return nil
}

// List returns the listing. A missing listing yields an empty slice.
func (r *FileContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, err := r.readListing(ctx)
	if errors.Is(err, ErrNotFound) {
		return []*model.ContactSubmission{}, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveByID drops the record from the listing and deletes its document.
// ErrNotFound is returned when the listing does not exist or has no such id.
func (r *FileContactRepository) RemoveByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.readListing(ctx)
	if err != nil {
		return err
	}

	kept := make([]*model.ContactSubmission, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return ErrNotFound
	}

	if err := r.writeListing(ctx, kept); err != nil {
		return err
	}
	return r.store.Delete(ctx, RecordKey(id))
}

func (r *FileContactRepository) readListing(ctx context.Context) ([]*model.ContactSubmission, error) {
	data, err := r.store.Read(ctx, ListingKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	list := []*model.ContactSubmission{}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ListingKey, err)
	}
	return list, nil
}

func (r *FileContactRepository) writeListing(ctx context.Context, list []*model.ContactSubmission) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", ListingKey, err)
	}
	return r.store.Write(ctx, ListingKey, data)
}
