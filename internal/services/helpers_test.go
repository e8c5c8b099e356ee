// internal/services/helpers_test.go
package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/payout"
	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/store"
	"github.com/inkrights/ledger-backend/internal/store/memory"
)

// testHash is a well-formed 64-hex content hash.
var testHash = strings.Repeat("ab", 32)

// fixture wires the full service graph over in-memory stores, the way
// the router does at startup.
type fixture struct {
	stores         store.Stores
	bank           *payout.MemoryBank
	rights         *services.RightsService
	content        *services.ContentService
	catalog        *services.CatalogService
	revenue        *services.RevenueService
	admin          auth.AdminCapability
	registryAddr   models.Address
	platformWallet models.Address
}

func newFixture(t *testing.T, feePercent uint64) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		stores:         memory.NewStores(),
		bank:           payout.NewMemoryBank(),
		admin:          auth.NewAdminCapability(uuid.New()),
		registryAddr:   uuid.New(),
		platformWallet: uuid.New(),
	}

	var err error
	f.rights, err = services.NewRightsService(f.stores.Rights, f.stores.Settings, f.stores.Events, f.stores.Runner)
	require.NoError(t, err)
	require.NoError(t, f.rights.SetContentRegistryAddress(ctx, f.admin, f.registryAddr))

	f.revenue, err = services.NewRevenueService(
		f.stores.Revenue, f.stores.Settings, f.stores.Events, f.bank, f.stores.Runner,
		f.admin.Address(), f.platformWallet, feePercent,
	)
	require.NoError(t, err)

	f.catalog = services.NewCatalogService(f.stores.Catalog, f.stores.Events, f.revenue, f.bank, f.stores.Runner)
	require.NoError(t, f.catalog.SetRightsRegistry(ctx, f.admin, f.rights))

	f.content = services.NewContentService(f.stores.Content, f.stores.Events, f.rights, f.stores.Runner, f.registryAddr)
	return f
}

func (f *fixture) createContent(t *testing.T, creator models.Address, description string) uint64 {
	t.Helper()
	record, err := f.content.Create(context.Background(), creator, &services.CreateContentRequest{
		ContentHash: testHash,
		Description: description,
	})
	require.NoError(t, err)
	return record.ID
}

func eventFilterByContent(eventType models.EventType, contentID uint64) store.EventFilter {
	return store.EventFilter{Type: eventType, ContentID: &contentID}
}

func (f *fixture) registerProduct(t *testing.T, designer models.Address, contentID, price uint64) uint64 {
	t.Helper()
	listing, err := f.catalog.RegisterProduct(context.Background(), designer, &services.RegisterProductRequest{
		ContentID:   contentID,
		Price:       price,
		DesignHash:  testHash,
		Description: "test product",
	})
	require.NoError(t, err)
	return listing.ProductID
}
