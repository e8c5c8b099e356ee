// internal/payout/stripe.go
package payout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/transfer"

	"github.com/inkrights/ledger-backend/internal/models"
)

// StripeTransferrer moves withdrawn balances to connected Stripe
// accounts. Recipients must be mapped to account IDs out of band; the
// ledger itself never learns payment-network details.
type StripeTransferrer struct {
	currency string
	accounts map[models.Address]string
}

func NewStripeTransferrer(secretKey, currency string, accounts map[models.Address]string) *StripeTransferrer {
	stripe.Key = secretKey
	if currency == "" {
		currency = "usd"
	}
	return &StripeTransferrer{
		currency: currency,
		accounts: accounts,
	}
}

func (s *StripeTransferrer) Transfer(ctx context.Context, to models.Address, amount uint64, reference string) error {
	account, ok := s.accounts[to]
	if !ok {
		return fmt.Errorf("no payout account mapped for recipient %s", to)
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(int64(amount)),
		Currency:    stripe.String(s.currency),
		Destination: stripe.String(account),
	}
	params.AddMetadata("reference", reference)
	params.AddMetadata("recipient", to.String())

	if _, err := transfer.New(params); err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}
