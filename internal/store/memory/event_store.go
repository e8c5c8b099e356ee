// internal/store/memory/event_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// EventStore is an in-memory implementation of store.EventStore.
type EventStore struct {
	mu     sync.RWMutex
	events []models.LedgerEvent
}

// NewEventStore creates a new in-memory event journal.
func NewEventStore() store.EventStore {
	return &EventStore{}
}

func (s *EventStore) Append(ctx context.Context, event *models.LedgerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *EventStore) List(ctx context.Context, filter store.EventFilter) ([]models.LedgerEvent, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.LedgerEvent, 0, len(s.events))
	for _, e := range s.events {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Actor != nil && e.Actor != *filter.Actor {
			continue
		}
		if filter.ContentID != nil && (e.ContentID == nil || *e.ContentID != *filter.ContentID) {
			continue
		}
		if filter.ProductID != nil && (e.ProductID == nil || *e.ProductID != *filter.ProductID) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}
