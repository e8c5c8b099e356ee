// internal/store/gormstore/runner.go
package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/inkrights/ledger-backend/internal/database"
)

type txKey struct{}

// conn returns the ambient transaction handle when one was opened by
// Runner.Atomic, otherwise the base connection. Every store method
// resolves its handle through conn so writes issued inside Atomic
// commit or roll back together.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// Runner satisfies store.Transactor over a single PostgreSQL
// transaction per Atomic call.
type Runner struct {
	db *gorm.DB
}

// NewRunner creates a GORM-backed transaction runner.
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// Atomic runs fn inside one transaction. A nested call joins the
// ambient transaction instead of opening a second one.
func (r *Runner) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
