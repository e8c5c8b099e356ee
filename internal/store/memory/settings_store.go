// internal/store/memory/settings_store.go
package memory

import (
	"context"
	"sync"

	"github.com/inkrights/ledger-backend/internal/store"
)

// SettingsStore is an in-memory implementation of store.SettingsStore.
type SettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettingsStore creates a new in-memory settings store.
func NewSettingsStore() store.SettingsStore {
	return &SettingsStore{values: make(map[string]string)}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// NewStores bundles a complete in-memory store set, used by tests and
// by deployments running without PostgreSQL.
func NewStores() store.Stores {
	return store.Stores{
		Content:  NewContentStore(),
		Rights:   NewRightsStore(),
		Catalog:  NewCatalogStore(),
		Revenue:  NewRevenueStore(),
		Events:   NewEventStore(),
		Settings: NewSettingsStore(),
		Runner:   NewRunner(),
	}
}
