// internal/store/gormstore/content_store.go
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// ContentStore is the PostgreSQL implementation of store.ContentStore.
type ContentStore struct {
	db *gorm.DB
}

// NewContentStore creates a GORM-backed content store.
func NewContentStore(db *gorm.DB) store.ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) Create(ctx context.Context, record *models.ContentRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	// ID assignment and insert run in one transaction. Registrations are
	// serialized by the owning service, so MAX+1 keeps IDs dense.
	return conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var nextID uint64
		if err := tx.Raw(
			"SELECT COALESCE(MAX(id), 0) + 1 FROM content_records",
		).Scan(&nextID).Error; err != nil {
			return err
		}
		record.ID = nextID
		return tx.Create(record).Error
	})
}

func (s *ContentStore) Get(ctx context.Context, contentID uint64) (models.ContentRecord, error) {
	var record models.ContentRecord
	err := conn(ctx, s.db).First(&record, "id = ?", contentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContentRecord{}, nil
	}
	return record, err
}

func (s *ContentStore) ListByCreator(ctx context.Context, creator models.Address) ([]models.ContentRecord, error) {
	var records []models.ContentRecord
	err := conn(ctx, s.db).
		Where("creator = ?", creator).
		Order("id ASC").
		Find(&records).Error
	return records, err
}
