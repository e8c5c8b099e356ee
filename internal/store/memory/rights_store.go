// internal/store/memory/rights_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

type operatorKey struct {
	owner    models.Address
	operator models.Address
}

// RightsStore is an in-memory implementation of store.RightsStore.
type RightsStore struct {
	mu        sync.RWMutex
	entries   map[uint64]models.OwnershipEntry
	operators map[operatorKey]bool
}

// NewRightsStore creates a new in-memory rights store.
func NewRightsStore() store.RightsStore {
	return &RightsStore{
		entries:   make(map[uint64]models.OwnershipEntry),
		operators: make(map[operatorKey]bool),
	}
}

func (s *RightsStore) Entry(ctx context.Context, contentID uint64) (models.OwnershipEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries[contentID], nil
}

func (s *RightsStore) PutEntry(ctx context.Context, entry models.OwnershipEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.UpdatedAt = time.Now().UTC()
	s.entries[entry.ContentID] = entry
	return nil
}

func (s *RightsStore) Operator(ctx context.Context, owner, operator models.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.operators[operatorKey{owner, operator}], nil
}

func (s *RightsStore) SetOperator(ctx context.Context, approval models.OperatorApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.operators[operatorKey{approval.Owner, approval.Operator}] = approval.Enabled
	return nil
}
