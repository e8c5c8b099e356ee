// internal/auth/capability.go
package auth

import "github.com/inkrights/ledger-backend/internal/models"

// AdminCapability is proof of administrative authority, handed to
// privileged service operations explicitly instead of an implicit global
// owner. Only the wiring layer mints one, after verifying the caller
// against the deployment's configured admin identity.
type AdminCapability struct {
	addr models.Address
}

// NewAdminCapability mints a capability for the configured admin address.
func NewAdminCapability(addr models.Address) AdminCapability {
	return AdminCapability{addr: addr}
}

// Address is the admin identity backing the capability.
func (c AdminCapability) Address() models.Address {
	return c.addr
}

// Valid reports whether the capability was minted for a real identity.
// The zero value of AdminCapability grants nothing.
func (c AdminCapability) Valid() bool {
	return !models.IsZeroAddress(c.addr)
}
