// internal/store/store.go
package store

import (
	"context"

	"github.com/inkrights/ledger-backend/internal/models"
)

// Per-registry store interfaces. Each registry's state is reachable only
// through its own store; components never touch another component's
// storage. Absent rows come back as zero values rather than errors: the
// services detect absence through the zero-creator / zero-product
// sentinels, so the stores stay free of policy.

// ContentStore persists immutable content registrations.
type ContentStore interface {
	// Create assigns the next dense content ID (starting at 1) and
	// stores the record.
	Create(ctx context.Context, record *models.ContentRecord) error
	// Get returns the record, or a zero record if the ID is unknown.
	Get(ctx context.Context, contentID uint64) (models.ContentRecord, error)
	// ListByCreator returns the creator's records in creation order.
	ListByCreator(ctx context.Context, creator models.Address) ([]models.ContentRecord, error)
}

// RightsStore persists ownership, single-spender approval and
// operator-wide approval state.
type RightsStore interface {
	// Entry returns the ownership entry, zero-valued if unowned.
	Entry(ctx context.Context, contentID uint64) (models.OwnershipEntry, error)
	// PutEntry upserts the full entry (owner plus approved spender) as
	// one write, so transfer-and-clear cannot half-apply.
	PutEntry(ctx context.Context, entry models.OwnershipEntry) error
	// Operator reports whether operator is enabled for owner.
	Operator(ctx context.Context, owner, operator models.Address) (bool, error)
	// SetOperator upserts a blanket operator approval.
	SetOperator(ctx context.Context, approval models.OperatorApproval) error
}

// CatalogStore persists product listings.
type CatalogStore interface {
	// Create assigns the next dense product ID (starting at 1) and
	// stores the listing.
	Create(ctx context.Context, listing *models.ProductListing) error
	// Get returns the listing, zero-valued if unknown.
	Get(ctx context.Context, productID uint64) (models.ProductListing, error)
	// Put replaces an existing listing.
	Put(ctx context.Context, listing models.ProductListing) error
	// IDsByContent returns product IDs for a content ID in registration order.
	IDsByContent(ctx context.Context, contentID uint64) ([]uint64, error)
}

// RevenueStore persists the per-recipient owed balances held by the
// revenue splitter.
type RevenueStore interface {
	Balance(ctx context.Context, recipient models.Address) (uint64, error)
	Credit(ctx context.Context, recipient models.Address, amount uint64) error
	// Withdraw zeroes the recipient's balance and returns what was owed.
	Withdraw(ctx context.Context, recipient models.Address) (uint64, error)
	// TotalHeld is the sum of all owed balances.
	TotalHeld(ctx context.Context) (uint64, error)
	// SweepAll zeroes every balance and returns the swept total.
	SweepAll(ctx context.Context) (map[models.Address]uint64, error)
}

// EventFilter narrows event listings for the audit API. Pointer fields
// distinguish "not filtered" from filtering on a zero value.
type EventFilter struct {
	Type      models.EventType
	Actor     *models.Address
	ContentID *uint64
	ProductID *uint64
	Limit     int
	Offset    int
}

// EventStore is the append-only audit journal.
type EventStore interface {
	Append(ctx context.Context, event *models.LedgerEvent) error
	List(ctx context.Context, filter EventFilter) ([]models.LedgerEvent, int64, error)
}

// SettingsStore persists the small set of mutable deployment settings
// (trusted registry address, fee percentage, platform wallet) so they
// survive restarts.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Setting keys shared between services and stores.
const (
	SettingContentRegistryAddress = "rights.content_registry_address"
	SettingFeePercentage          = "revenue.fee_percentage"
	SettingPlatformWallet         = "revenue.platform_wallet"
)

// Transactor runs fn with all-or-nothing semantics: every store write
// issued through the derived context commits together or not at all.
// Backends without multi-statement transactions run fn directly and
// rely on the services' checks-before-writes ordering.
type Transactor interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

// Atomic runs fn through the transactor, or directly when none is
// configured.
func Atomic(ctx context.Context, t Transactor, fn func(ctx context.Context) error) error {
	if t == nil {
		return fn(ctx)
	}
	return t.Atomic(ctx, fn)
}

// Stores bundles one store per registry for wiring, plus the backend's
// transaction runner.
type Stores struct {
	Content  ContentStore
	Rights   RightsStore
	Catalog  CatalogStore
	Revenue  RevenueStore
	Events   EventStore
	Settings SettingsStore
	Runner   Transactor
}
