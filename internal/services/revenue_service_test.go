// internal/services/revenue_service_test.go
package services_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/services"
)

func TestRecordSaleSharesSumToTotal(t *testing.T) {
	for fee := uint64(0); fee <= 100; fee += 5 {
		fee := fee
		t.Run(fmt.Sprintf("fee=%d", fee), func(t *testing.T) {
			f := newFixture(t, fee)
			creator := uuid.New()

			for _, total := range []uint64{1, 3, 99, 100, 101, 12345} {
				share, err := f.revenue.RecordSale(context.Background(), 1, creator, total, total)
				require.NoError(t, err)
				assert.Equal(t, total, share.CreatorShare+share.PlatformShare)
				assert.Equal(t, total*fee/100, share.PlatformShare)
			}
		})
	}
}

func TestRecordSaleRemainderGoesToCreator(t *testing.T) {
	f := newFixture(t, 33)
	creator := uuid.New()

	// 100 * 33 / 100 = 33 platform, remainder 67 to the creator.
	share, err := f.revenue.RecordSale(context.Background(), 1, creator, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(33), share.PlatformShare)
	assert.Equal(t, uint64(67), share.CreatorShare)

	// 10 * 33 / 100 floors to 3.
	share, err = f.revenue.RecordSale(context.Background(), 1, creator, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), share.PlatformShare)
	assert.Equal(t, uint64(7), share.CreatorShare)
}

func TestRecordSaleLargeTotalsDoNotOverflow(t *testing.T) {
	f := newFixture(t, 10)
	creator := uuid.New()

	// 2^63 * 10 would wrap a uint64 if the split multiplied first.
	total := uint64(1) << 63
	share, err := f.revenue.RecordSale(context.Background(), 1, creator, total, total)
	require.NoError(t, err)
	assert.Equal(t, uint64(922337203685477580), share.PlatformShare)
	assert.Equal(t, total, share.CreatorShare+share.PlatformShare)

	cases := []struct {
		fee      uint64
		platform uint64
	}{
		{0, 0},
		{25, 4611686018427387903},
		{50, 9223372036854775807},
		{75, 13835058055282163711},
		{100, math.MaxUint64},
	}
	for _, tc := range cases {
		f := newFixture(t, tc.fee)
		share, err := f.revenue.RecordSale(context.Background(), 1, creator, math.MaxUint64, math.MaxUint64)
		require.NoError(t, err)
		assert.Equal(t, tc.platform, share.PlatformShare, "fee=%d", tc.fee)
		assert.Equal(t, uint64(math.MaxUint64), share.CreatorShare+share.PlatformShare)
	}
}

func TestRecordSaleValidation(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, models.ZeroAddress, 100, 100)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, err = f.revenue.RecordSale(ctx, 1, creator, 0, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, err = f.revenue.RecordSale(ctx, 1, creator, 100, 90)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestRecordSaleAccumulatesBalances(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 100, 100)
	require.NoError(t, err)
	_, err = f.revenue.RecordSale(ctx, 2, creator, 1000, 1000)
	require.NoError(t, err)

	balance, err := f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(90+900), balance)

	balance, err = f.revenue.Balance(ctx, f.platformWallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(10+100), balance)
}

func TestSetFeePercentage(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	require.NoError(t, f.revenue.SetFeePercentage(ctx, f.admin, 25))
	assert.Equal(t, uint64(25), f.revenue.FeePercentage())

	err := f.revenue.SetFeePercentage(ctx, f.admin, 101)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	err = f.revenue.SetFeePercentage(ctx, auth.AdminCapability{}, 25)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestFeeChangeAppliesToLaterSalesOnly(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	share, err := f.revenue.RecordSale(ctx, 1, creator, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), share.PlatformShare)

	require.NoError(t, f.revenue.SetFeePercentage(ctx, f.admin, 50))

	share, err = f.revenue.RecordSale(ctx, 2, creator, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), share.PlatformShare)
}

func TestSetPlatformWallet(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	replacement := uuid.New()

	require.NoError(t, f.revenue.SetPlatformWallet(ctx, f.admin, replacement))
	assert.Equal(t, models.Address(replacement), f.revenue.PlatformWallet())

	err := f.revenue.SetPlatformWallet(ctx, f.admin, models.ZeroAddress)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	err = f.revenue.SetPlatformWallet(ctx, auth.AdminCapability{}, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestWithdrawCreatorFunds(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 1000, 1000)
	require.NoError(t, err)

	amount, err := f.revenue.WithdrawCreatorFunds(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), amount)
	assert.Equal(t, uint64(900), f.bank.TotalSent(creator))

	// The entry is zeroed; a second withdrawal has nothing to pay.
	_, err = f.revenue.WithdrawCreatorFunds(ctx, creator)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailedPrecondition))
}

func TestWithdrawCreatorFundsOwnEntryOnly(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 1000, 1000)
	require.NoError(t, err)

	// A stranger withdrawing touches only their own empty entry.
	_, err = f.revenue.WithdrawCreatorFunds(ctx, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailedPrecondition))

	balance, err := f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), balance)
}

func TestWithdrawPlatformFundsAuthorization(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 1000, 1000)
	require.NoError(t, err)

	_, err = f.revenue.WithdrawPlatformFunds(ctx, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	// The admin may trigger the payout; funds still go to the wallet.
	amount, err := f.revenue.WithdrawPlatformFunds(ctx, f.admin.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount)
	assert.Equal(t, uint64(100), f.bank.TotalSent(f.platformWallet))
}

func TestWithdrawPlatformFundsByWallet(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 1000, 1000)
	require.NoError(t, err)

	amount, err := f.revenue.WithdrawPlatformFunds(ctx, f.platformWallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount)

	// Creator funds are untouched by the platform withdrawal.
	balance, err := f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), balance)
}

func TestEmergencyWithdraw(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.revenue.RecordSale(ctx, 1, creator, 1000, 1000)
	require.NoError(t, err)

	total, err := f.revenue.EmergencyWithdraw(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), total)
	assert.Equal(t, uint64(1000), f.bank.TotalSent(f.admin.Address()))

	// Every balance is zeroed.
	balance, err := f.revenue.Balance(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	_, err = f.revenue.EmergencyWithdraw(ctx, f.admin)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFailedPrecondition))
}

func TestEmergencyWithdrawRequiresCapability(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.revenue.EmergencyWithdraw(context.Background(), auth.AdminCapability{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestNewRevenueServiceRejectsBadConfig(t *testing.T) {
	f := newFixture(t, 10)

	_, err := services.NewRevenueService(
		f.stores.Revenue, f.stores.Settings, f.stores.Events, f.bank, f.stores.Runner,
		f.admin.Address(), f.platformWallet, 101,
	)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}
