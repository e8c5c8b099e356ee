// internal/payout/payout.go
package payout

import (
	"context"
	"sync"

	"github.com/inkrights/ledger-backend/internal/models"
)

// Transferrer is the single native-value transfer abstraction the ledger
// depends on. Everything beyond moving an amount to a recipient is out
// of scope.
type Transferrer interface {
	Transfer(ctx context.Context, to models.Address, amount uint64, reference string) error
}

// Transfer is one recorded outbound payment.
type Transfer struct {
	To        models.Address
	Amount    uint64
	Reference string
}

// MemoryBank is an in-process Transferrer used by tests and dev mode.
// It records every transfer so callers can assert on exact amounts.
type MemoryBank struct {
	mu        sync.Mutex
	transfers []Transfer
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{}
}

func (b *MemoryBank) Transfer(ctx context.Context, to models.Address, amount uint64, reference string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.transfers = append(b.transfers, Transfer{To: to, Amount: amount, Reference: reference})
	return nil
}

// Transfers returns a copy of everything sent so far.
func (b *MemoryBank) Transfers() []Transfer {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Transfer, len(b.transfers))
	copy(out, b.transfers)
	return out
}

// TotalSent sums all transfers to one recipient.
func (b *MemoryBank) TotalSent(to models.Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total uint64
	for _, t := range b.transfers {
		if t.To == to {
			total += t.Amount
		}
	}
	return total
}
