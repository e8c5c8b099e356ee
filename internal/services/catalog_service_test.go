// internal/services/catalog_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/services"
)

func TestRegisterProductAssignsDenseIDs(t *testing.T) {
	f := newFixture(t, 10)
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")

	for want := uint64(1); want <= 3; want++ {
		id := f.registerProduct(t, creator, contentID, 100)
		assert.Equal(t, want, id)
	}
}

func TestRegisterProductRequiresOwnership(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")

	_, err := f.catalog.RegisterProduct(ctx, uuid.New(), &services.RegisterProductRequest{
		ContentID:   contentID,
		Price:       100,
		DesignHash:  testHash,
		Description: "knockoff",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestRegisterProductRejectsZeroPrice(t *testing.T) {
	f := newFixture(t, 10)
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")

	_, err := f.catalog.RegisterProduct(context.Background(), creator, &services.RegisterProductRequest{
		ContentID:   contentID,
		Price:       0,
		DesignHash:  testHash,
		Description: "free",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestRegisterProductUnknownContent(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.catalog.RegisterProduct(context.Background(), uuid.New(), &services.RegisterProductRequest{
		ContentID:   42,
		Price:       100,
		DesignHash:  testHash,
		Description: "phantom",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestGetProductNotFound(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.catalog.GetProduct(context.Background(), 7)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListProductIDsByContent(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	first := f.createContent(t, creator, "one")
	second := f.createContent(t, creator, "two")

	p1 := f.registerProduct(t, creator, first, 100)
	p2 := f.registerProduct(t, creator, second, 200)
	p3 := f.registerProduct(t, creator, first, 300)

	ids, err := f.catalog.ListProductIDsByContent(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []uint64{p1, p3}, ids)

	ids, err = f.catalog.ListProductIDsByContent(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, []uint64{p2}, ids)
}

func TestSetActiveDesignerOnly(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	err := f.catalog.SetActive(ctx, uuid.New(), productID, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	require.NoError(t, f.catalog.SetActive(ctx, creator, productID, false))

	listing, err := f.catalog.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.False(t, listing.Active)
}

func TestSetActiveDesignerSurvivesOwnershipTransfer(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	next := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	require.NoError(t, f.rights.TransferFrom(ctx, creator, creator, next, contentID))

	// The listing stays under the original designer's control.
	err := f.catalog.SetActive(ctx, next, productID, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
	require.NoError(t, f.catalog.SetActive(ctx, creator, productID, false))
}

func TestPurchaseExactPayment(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	buyer := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	receipt, err := f.catalog.Purchase(ctx, buyer, productID, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), receipt.Paid)
	assert.Equal(t, uint64(0), receipt.Change)
	assert.Equal(t, uint64(90), receipt.Share.CreatorShare)
	assert.Equal(t, uint64(10), receipt.Share.PlatformShare)
	assert.Empty(t, f.bank.Transfers())
}

func TestPurchaseOverpaymentReturnsExactChange(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	buyer := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	for _, extra := range []uint64{1, 7, 50} {
		receipt, err := f.catalog.Purchase(ctx, buyer, productID, 100+extra)
		require.NoError(t, err)
		assert.Equal(t, extra, receipt.Change)
		// Only the price is settled, never the overpayment.
		assert.Equal(t, uint64(100), receipt.Share.TotalRevenue)
	}
	assert.Equal(t, uint64(1+7+50), f.bank.TotalSent(buyer))
}

func TestPurchaseUnderpaymentRejected(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	_, err := f.catalog.Purchase(ctx, uuid.New(), productID, 99)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	// Nothing was settled.
	balance, err := f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestPurchaseInactiveProduct(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)
	require.NoError(t, f.catalog.SetActive(ctx, creator, productID, false))

	_, err := f.catalog.Purchase(ctx, uuid.New(), productID, 100)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailedPrecondition))
}

func TestPurchaseUnknownProduct(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.catalog.Purchase(context.Background(), uuid.New(), 42, 100)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestPurchaseCreditsCurrentOwnerAfterTransfer(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	next := uuid.New()
	buyer := uuid.New()
	contentID := f.createContent(t, creator, "artwork")
	productID := f.registerProduct(t, creator, contentID, 100)

	require.NoError(t, f.rights.TransferFrom(ctx, creator, creator, next, contentID))

	receipt, err := f.catalog.Purchase(ctx, buyer, productID, 100)
	require.NoError(t, err)
	assert.Equal(t, next, receipt.Share.Creator)

	balance, err := f.revenue.Balance(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), balance)

	balance, err = f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestRegisterProductRequiresConfiguredRightsRegistry(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()
	contentID := f.createContent(t, creator, "artwork")

	bare := services.NewCatalogService(f.stores.Catalog, f.stores.Events, f.revenue, f.bank, f.stores.Runner)
	_, err := bare.RegisterProduct(ctx, creator, &services.RegisterProductRequest{
		ContentID:   contentID,
		Price:       100,
		DesignHash:  testHash,
		Description: "test product",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailedPrecondition))
}
