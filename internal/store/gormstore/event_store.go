// internal/store/gormstore/event_store.go
package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// EventStore is the PostgreSQL implementation of store.EventStore.
type EventStore struct {
	db *gorm.DB
}

// NewEventStore creates a GORM-backed event store.
func NewEventStore(db *gorm.DB) store.EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Append(ctx context.Context, event *models.LedgerEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return conn(ctx, s.db).Create(event).Error
}

func (s *EventStore) List(ctx context.Context, filter store.EventFilter) ([]models.LedgerEvent, int64, error) {
	query := conn(ctx, s.db).Model(&models.LedgerEvent{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Actor != nil {
		query = query.Where("actor = ?", *filter.Actor)
	}
	if filter.ContentID != nil {
		query = query.Where("content_id = ?", *filter.ContentID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var events []models.LedgerEvent
	// Append order, matching the in-memory journal.
	err := query.Order("created_at ASC").Find(&events).Error
	return events, total, err
}
