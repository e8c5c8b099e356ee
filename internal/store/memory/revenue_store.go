// internal/store/memory/revenue_store.go
package memory

import (
	"context"
	"sync"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// RevenueStore is an in-memory implementation of store.RevenueStore.
type RevenueStore struct {
	mu       sync.RWMutex
	balances map[models.Address]uint64
}

// NewRevenueStore creates a new in-memory revenue store.
func NewRevenueStore() store.RevenueStore {
	return &RevenueStore{
		balances: make(map[models.Address]uint64),
	}
}

func (s *RevenueStore) Balance(ctx context.Context, recipient models.Address) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[recipient], nil
}

func (s *RevenueStore) Credit(ctx context.Context, recipient models.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[recipient] += amount
	return nil
}

func (s *RevenueStore) Withdraw(ctx context.Context, recipient models.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount := s.balances[recipient]
	delete(s.balances, recipient)
	return amount, nil
}

func (s *RevenueStore) TotalHeld(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total uint64
	for _, amount := range s.balances {
		total += amount
	}
	return total, nil
}

func (s *RevenueStore) SweepAll(ctx context.Context) (map[models.Address]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := s.balances
	s.balances = make(map[models.Address]uint64)
	return swept, nil
}
