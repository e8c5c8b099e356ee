// internal/store/memory/catalog_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// CatalogStore is an in-memory implementation of store.CatalogStore.
type CatalogStore struct {
	mu        sync.RWMutex
	nextID    uint64
	listings  map[uint64]models.ProductListing
	byContent map[uint64][]uint64
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() store.CatalogStore {
	return &CatalogStore{
		nextID:    1,
		listings:  make(map[uint64]models.ProductListing),
		byContent: make(map[uint64][]uint64),
	}
}

func (s *CatalogStore) Create(ctx context.Context, listing *models.ProductListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing.ProductID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	s.listings[listing.ProductID] = *listing
	s.byContent[listing.ContentID] = append(s.byContent[listing.ContentID], listing.ProductID)
	return nil
}

func (s *CatalogStore) Get(ctx context.Context, productID uint64) (models.ProductListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listings[productID], nil
}

func (s *CatalogStore) Put(ctx context.Context, listing models.ProductListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing.UpdatedAt = time.Now().UTC()
	s.listings[listing.ProductID] = listing
	return nil
}

func (s *CatalogStore) IDsByContent(ctx context.Context, contentID uint64) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byContent[contentID]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out, nil
}
