// internal/services/revenue_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/payout"
	"github.com/inkrights/ledger-backend/internal/store"
)

// RevenueService computes creator/platform revenue splits and holds the
// resulting funds as per-party owed balances until each party withdraws
// its own entry. Creator and platform funds are never pooled into one
// undifferentiated balance.
type RevenueService struct {
	mu             sync.Mutex
	revenue        store.RevenueStore
	settings       store.SettingsStore
	events         store.EventStore
	bank           payout.Transferrer
	runner         store.Transactor
	adminAddr      models.Address
	feePercentage  uint64
	platformWallet models.Address
	log            *logrus.Entry
}

// NewRevenueService loads persisted settings, falling back to the
// supplied initial fee percentage and platform wallet.
func NewRevenueService(revenue store.RevenueStore, settings store.SettingsStore, events store.EventStore, bank payout.Transferrer, runner store.Transactor, adminAddr, platformWallet models.Address, initialFeePercent uint64) (*RevenueService, error) {
	if initialFeePercent > 100 {
		return nil, apperrors.InvalidArgument("initial fee percentage %d exceeds 100", initialFeePercent)
	}

	s := &RevenueService{
		revenue:        revenue,
		settings:       settings,
		events:         events,
		bank:           bank,
		runner:         runner,
		adminAddr:      adminAddr,
		feePercentage:  initialFeePercent,
		platformWallet: platformWallet,
		log:            logrus.WithField("component", "revenue_splitter"),
	}

	ctx := context.Background()
	if value, ok, err := settings.Get(ctx, store.SettingFeePercentage); err != nil {
		return nil, apperrors.Internal(err, "failed to load fee percentage")
	} else if ok {
		pct, err := strconv.ParseUint(value, 10, 64)
		if err != nil || pct > 100 {
			return nil, apperrors.Internal(err, "corrupt fee percentage setting %q", value)
		}
		s.feePercentage = pct
	}
	if value, ok, err := settings.Get(ctx, store.SettingPlatformWallet); err != nil {
		return nil, apperrors.Internal(err, "failed to load platform wallet")
	} else if ok {
		addr, err := uuid.Parse(value)
		if err != nil {
			return nil, apperrors.Internal(err, "corrupt platform wallet setting %q", value)
		}
		s.platformWallet = addr
	}

	if models.IsZeroAddress(s.platformWallet) {
		return nil, apperrors.InvalidArgument("platform wallet is required")
	}
	return s, nil
}

// FeePercentage returns the current platform fee in [0,100].
func (s *RevenueService) FeePercentage() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feePercentage
}

// PlatformWallet returns the configured platform wallet.
func (s *RevenueService) PlatformWallet() models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platformWallet
}

// SetFeePercentage updates the platform fee. Admin capability required.
func (s *RevenueService) SetFeePercentage(ctx context.Context, admin auth.AdminCapability, pct uint64) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}
	if pct > 100 {
		return apperrors.InvalidArgument("fee percentage %d exceeds 100", pct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.feePercentage
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.settings.Set(ctx, store.SettingFeePercentage, strconv.FormatUint(pct, 10)); err != nil {
			return apperrors.Internal(err, "failed to persist fee percentage")
		}
		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventFeePercentageSet,
			Actor:     admin.Address(),
			OldValues: models.JSONB{"fee_percentage": old},
			NewValues: models.JSONB{"fee_percentage": pct},
		})
	}); err != nil {
		return err
	}
	s.feePercentage = pct
	return nil
}

// SetPlatformWallet updates the platform wallet. Admin capability required.
func (s *RevenueService) SetPlatformWallet(ctx context.Context, admin auth.AdminCapability, addr models.Address) error {
	if !admin.Valid() {
		return apperrors.Unauthorized("admin capability required")
	}
	if models.IsZeroAddress(addr) {
		return apperrors.InvalidArgument("platform wallet is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.platformWallet
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.settings.Set(ctx, store.SettingPlatformWallet, addr.String()); err != nil {
			return apperrors.Internal(err, "failed to persist platform wallet")
		}
		return s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventPlatformWalletSet,
			Actor:     admin.Address(),
			OldValues: models.JSONB{"platform_wallet": old.String()},
			NewValues: models.JSONB{"platform_wallet": addr.String()},
		})
	}); err != nil {
		return err
	}
	s.platformWallet = addr
	return nil
}

// mulPercent computes floor(total * pct / 100) without overflowing
// uint64 for any total. pct must be in [0,100].
func mulPercent(total, pct uint64) uint64 {
	return total/100*pct + total%100*pct/100
}

// RecordSale computes the split for one sale and credits the owed
// ledger. Integer floor division: the platform share rounds down, the
// remainder always goes to the creator, and the two shares sum exactly
// to the total.
func (s *RevenueService) RecordSale(ctx context.Context, productID uint64, creator models.Address, totalRevenue, incomingValue uint64) (models.RevenueShare, error) {
	if models.IsZeroAddress(creator) {
		return models.RevenueShare{}, apperrors.InvalidArgument("creator is required")
	}
	if totalRevenue == 0 {
		return models.RevenueShare{}, apperrors.InvalidArgument("total revenue must be positive")
	}
	if incomingValue != totalRevenue {
		return models.RevenueShare{}, apperrors.InvalidArgument("incoming value %d does not match revenue %d", incomingValue, totalRevenue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	platformShare := mulPercent(totalRevenue, s.feePercentage)
	creatorShare := totalRevenue - platformShare

	share := models.RevenueShare{
		ProductID:     productID,
		Creator:       creator,
		TotalRevenue:  totalRevenue,
		CreatorShare:  creatorShare,
		PlatformShare: platformShare,
		FeePercentage: s.feePercentage,
	}

	// Both credits and the sale event commit together.
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		if err := s.revenue.Credit(ctx, creator, creatorShare); err != nil {
			return apperrors.Internal(err, "failed to credit creator")
		}
		if platformShare > 0 {
			if err := s.revenue.Credit(ctx, s.platformWallet, platformShare); err != nil {
				return apperrors.Internal(err, "failed to credit platform")
			}
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventSaleRecorded,
			Actor:     creator,
			ProductID: &productID,
			NewValues: models.JSONB{
				"total_revenue":  totalRevenue,
				"creator_share":  creatorShare,
				"platform_share": platformShare,
				"fee_percentage": s.feePercentage,
			},
		}); err != nil {
			return apperrors.Internal(err, "failed to append sale event")
		}
		return nil
	}); err != nil {
		return models.RevenueShare{}, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id":     productID,
		"total_revenue":  totalRevenue,
		"creator_share":  creatorShare,
		"platform_share": platformShare,
	}).Info("Sale recorded")

	return share, nil
}

// Balance returns a recipient's accrued-but-unwithdrawn amount.
func (s *RevenueService) Balance(ctx context.Context, recipient models.Address) (uint64, error) {
	amount, err := s.revenue.Balance(ctx, recipient)
	if err != nil {
		return 0, apperrors.Internal(err, "failed to load balance")
	}
	return amount, nil
}

// WithdrawPlatformFunds pays out the platform's owed balance to the
// platform wallet. Callable by the platform wallet or the admin.
func (s *RevenueService) WithdrawPlatformFunds(ctx context.Context, caller models.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.platformWallet && caller != s.adminAddr {
		return 0, apperrors.Unauthorized("caller may not withdraw platform funds")
	}
	return s.withdrawLocked(ctx, caller, s.platformWallet, models.EventPlatformWithdrawal)
}

// WithdrawCreatorFunds pays out the caller's own owed balance.
func (s *RevenueService) WithdrawCreatorFunds(ctx context.Context, caller models.Address) (uint64, error) {
	if models.IsZeroAddress(caller) {
		return 0, apperrors.InvalidArgument("caller is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withdrawLocked(ctx, caller, caller, models.EventCreatorWithdrawal)
}

func (s *RevenueService) withdrawLocked(ctx context.Context, caller, recipient models.Address, eventType models.EventType) (uint64, error) {
	owed, err := s.revenue.Balance(ctx, recipient)
	if err != nil {
		return 0, apperrors.Internal(err, "failed to load balance")
	}
	if owed == 0 {
		return 0, apperrors.FailedPrecondition("nothing owed to %s", recipient)
	}

	var amount uint64
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		var err error
		amount, err = s.revenue.Withdraw(ctx, recipient)
		if err != nil {
			return apperrors.Internal(err, "failed to clear balance")
		}

		ref := fmt.Sprintf("withdrawal:%s", recipient)
		if err := s.bank.Transfer(ctx, recipient, amount, ref); err != nil {
			// Restore the owed entry so funds are not lost on backends
			// without rollback when the transfer rail rejects the payout.
			if creditErr := s.revenue.Credit(ctx, recipient, amount); creditErr != nil {
				return apperrors.Internal(creditErr, "failed to restore balance after transfer failure: %v", err)
			}
			return apperrors.Internal(err, "transfer failed")
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      eventType,
			Actor:     caller,
			OldValues: models.JSONB{"owed": owed},
			NewValues: models.JSONB{"owed": uint64(0), "transferred": amount, "recipient": recipient.String()},
		}); err != nil {
			return apperrors.Internal(err, "failed to append withdrawal event")
		}
		return nil
	}); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"recipient": recipient,
		"amount":    amount,
	}).Info("Funds withdrawn")

	return amount, nil
}

// EmergencyWithdraw sweeps every held balance to the admin. Stuck-funds
// recovery only; ordinary payouts go through the per-party withdrawals.
func (s *RevenueService) EmergencyWithdraw(ctx context.Context, admin auth.AdminCapability) (uint64, error) {
	if !admin.Valid() {
		return 0, apperrors.Unauthorized("admin capability required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	held, err := s.revenue.TotalHeld(ctx)
	if err != nil {
		return 0, apperrors.Internal(err, "failed to load held total")
	}
	if held == 0 {
		return 0, apperrors.FailedPrecondition("no funds held")
	}

	var total uint64
	if err := store.Atomic(ctx, s.runner, func(ctx context.Context) error {
		swept, err := s.revenue.SweepAll(ctx)
		if err != nil {
			return apperrors.Internal(err, "failed to sweep balances")
		}

		total = 0
		for _, amount := range swept {
			total += amount
		}
		if err := s.bank.Transfer(ctx, admin.Address(), total, "emergency-withdrawal"); err != nil {
			for recipient, amount := range swept {
				if creditErr := s.revenue.Credit(ctx, recipient, amount); creditErr != nil {
					return apperrors.Internal(creditErr, "failed to restore balances after transfer failure: %v", err)
				}
			}
			return apperrors.Internal(err, "transfer failed")
		}

		if err := s.events.Append(ctx, &models.LedgerEvent{
			Type:      models.EventEmergencyWithdrawal,
			Actor:     admin.Address(),
			OldValues: models.JSONB{"held": held},
			NewValues: models.JSONB{"held": uint64(0), "transferred": total},
		}); err != nil {
			return apperrors.Internal(err, "failed to append withdrawal event")
		}
		return nil
	}); err != nil {
		return 0, err
	}

	s.log.WithField("amount", total).Warn("Emergency withdrawal executed")
	return total, nil
}
