// internal/store/memory/content_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// ContentStore is an in-memory implementation of store.ContentStore.
type ContentStore struct {
	mu        sync.RWMutex
	nextID    uint64
	records   map[uint64]models.ContentRecord
	byCreator map[models.Address][]uint64
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() store.ContentStore {
	return &ContentStore{
		nextID:    1,
		records:   make(map[uint64]models.ContentRecord),
		byCreator: make(map[models.Address][]uint64),
	}
}

func (s *ContentStore) Create(ctx context.Context, record *models.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	s.records[record.ID] = *record
	s.byCreator[record.Creator] = append(s.byCreator[record.Creator], record.ID)
	return nil
}

func (s *ContentStore) Get(ctx context.Context, contentID uint64) (models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[contentID], nil
}

func (s *ContentStore) ListByCreator(ctx context.Context, creator models.Address) ([]models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCreator[creator]
	records := make([]models.ContentRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, s.records[id])
	}
	return records, nil
}
