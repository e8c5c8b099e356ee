// internal/store/gormstore/rights_store.go
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/store"
)

// RightsStore is the PostgreSQL implementation of store.RightsStore.
type RightsStore struct {
	db *gorm.DB
}

// NewRightsStore creates a GORM-backed rights store.
func NewRightsStore(db *gorm.DB) store.RightsStore {
	return &RightsStore{db: db}
}

func (s *RightsStore) Entry(ctx context.Context, contentID uint64) (models.OwnershipEntry, error) {
	var entry models.OwnershipEntry
	err := conn(ctx, s.db).First(&entry, "content_id = ?", contentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OwnershipEntry{}, nil
	}
	return entry, err
}

func (s *RightsStore) PutEntry(ctx context.Context, entry models.OwnershipEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	// Owner and approved spender land in one upsert.
	return conn(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "approved_spender", "updated_at"}),
	}).Create(&entry).Error
}

func (s *RightsStore) Operator(ctx context.Context, owner, operator models.Address) (bool, error) {
	var approval models.OperatorApproval
	err := conn(ctx, s.db).
		First(&approval, "owner = ? AND operator = ?", owner, operator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return approval.Enabled, nil
}

func (s *RightsStore) SetOperator(ctx context.Context, approval models.OperatorApproval) error {
	approval.UpdatedAt = time.Now().UTC()
	return conn(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "operator"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(&approval).Error
}
