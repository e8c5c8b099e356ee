// internal/store/gormstore/revenue_store.go
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

// RevenueStore is the PostgreSQL implementation of store.RevenueStore.
type RevenueStore struct {
	db *gorm.DB
}

// NewRevenueStore creates a GORM-backed revenue store.
func NewRevenueStore(db *gorm.DB) store.RevenueStore {
	return &RevenueStore{db: db}
}

func (s *RevenueStore) Balance(ctx context.Context, recipient models.Address) (uint64, error) {
	var balance models.OwedBalance
	err := conn(ctx, s.db).First(&balance, "recipient = ?", recipient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func (s *RevenueStore) Credit(ctx context.Context, recipient models.Address, amount uint64) error {
	balance := models.OwedBalance{
		Recipient: recipient,
		Amount:    amount,
		UpdatedAt: time.Now().UTC(),
	}
	return conn(ctx, s.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "recipient"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("owed_balances.amount + ?", amount),
			"updated_at": balance.UpdatedAt,
		}),
	}).Create(&balance).Error
}

func (s *RevenueStore) Withdraw(ctx context.Context, recipient models.Address) (uint64, error) {
	var owed uint64
	err := conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var balance models.OwedBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&balance, "recipient = ?", recipient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			owed = 0
			return nil
		}
		if err != nil {
			return err
		}
		owed = balance.Amount
		return tx.Model(&models.OwedBalance{}).
			Where("recipient = ?", recipient).
			Updates(map[string]interface{}{
				"amount":     0,
				"updated_at": time.Now().UTC(),
			}).Error
	})
	return owed, err
}

func (s *RevenueStore) TotalHeld(ctx context.Context) (uint64, error) {
	var total uint64
	err := conn(ctx, s.db).
		Model(&models.OwedBalance{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (s *RevenueStore) SweepAll(ctx context.Context) (map[models.Address]uint64, error) {
	swept := make(map[models.Address]uint64)
	err := conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var balances []models.OwedBalance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("amount > 0").
			Find(&balances).Error; err != nil {
			return err
		}
		for _, b := range balances {
			swept[b.Recipient] = b.Amount
		}
		return tx.Model(&models.OwedBalance{}).
			Where("amount > 0").
			Updates(map[string]interface{}{
				"amount":     0,
				"updated_at": time.Now().UTC(),
			}).Error
	})
	return swept, err
}
