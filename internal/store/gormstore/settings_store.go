// internal/store/gormstore/settings_store.go
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

// SettingsStore is the PostgreSQL implementation of store.SettingsStore.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a GORM-backed settings store.
func NewSettingsStore(db *gorm.DB) store.SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := conn(ctx, s.db).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return conn(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// NewStores bundles a complete GORM-backed store set.
func NewStores(db *gorm.DB) store.Stores {
	return store.Stores{
		Content:  NewContentStore(db),
		Rights:   NewRightsStore(db),
		Catalog:  NewCatalogStore(db),
		Revenue:  NewRevenueStore(db),
		Events:   NewEventStore(db),
		Settings: NewSettingsStore(db),
		Runner:   NewRunner(db),
	}
}
