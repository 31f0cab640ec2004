package repository

import (
	"context"
	"errors"

	"github.com/folio/backend/internal/model"
	"gorm.io/gorm"
)

// GormContactRepository is the embedded SQLite implementation of
// ContactRepository.
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a GormContactRepository. db must already be
// migrated (see NewGormDB).
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

var _ ContactStore = (*GormContactRepository)(nil)

func (r *GormContactRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormContactRepository) Append(ctx context.Context, c *model.ContactSubmission) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}
	return err
}

// List orders by id; ids are time-ordered so this is insertion order.
func (r *GormContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	contacts := []*model.ContactSubmission{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *GormContactRepository) RemoveByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactSubmission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *GormContactRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
