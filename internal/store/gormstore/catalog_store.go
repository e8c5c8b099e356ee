// internal/store/gormstore/catalog_store.go
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// CatalogStore is the PostgreSQL implementation of store.CatalogStore.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a GORM-backed catalog store.
func NewCatalogStore(db *gorm.DB) store.CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) Create(ctx context.Context, listing *models.ProductListing) error {
	now := time.Now().UTC()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	// Registrations are serialized by the owning service, so MAX+1 keeps
	// product IDs dense.
	return conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var nextID uint64
		if err := tx.Raw(
			"SELECT COALESCE(MAX(product_id), 0) + 1 FROM product_listings",
		).Scan(&nextID).Error; err != nil {
			return err
		}
		listing.ProductID = nextID
		return tx.Create(listing).Error
	})
}

func (s *CatalogStore) Get(ctx context.Context, productID uint64) (models.ProductListing, error) {
	var listing models.ProductListing
	err := conn(ctx, s.db).First(&listing, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductListing{}, nil
	}
	return listing, err
}

func (s *CatalogStore) Put(ctx context.Context, listing models.ProductListing) error {
	listing.UpdatedAt = time.Now().UTC()
	return conn(ctx, s.db).Save(&listing).Error
}

func (s *CatalogStore) IDsByContent(ctx context.Context, contentID uint64) ([]uint64, error) {
	var ids []uint64
	err := conn(ctx, s.db).
		Model(&models.ProductListing{}).
		Where("content_id = ?", contentID).
		Order("product_id ASC").
		Pluck("product_id", &ids).Error
	return ids, err
}
