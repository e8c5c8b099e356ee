// internal/middleware/admin.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/config"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// AdminRequired mints an AdminCapability for callers that prove
// administrative authority: the authenticated caller must be the
// configured admin address, and when an admin key hash is configured the
// X-Admin-Key header must match it as a second factor.
func AdminRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := utils.CallerFromContext(c)
		if !ok || caller != cfg.Ledger.AdminAddress {
			utils.ForbiddenResponse(c, "admin access required")
			c.Abort()
			return
		}

		if cfg.Ledger.AdminKeyHash != "" {
			key := c.GetHeader("X-Admin-Key")
			if key == "" || !utils.VerifyAdminKey(cfg.Ledger.AdminKeyHash, key) {
				utils.ForbiddenResponse(c, "admin key required")
				c.Abort()
				return
			}
		}

		c.Set("admin_capability", auth.NewAdminCapability(caller))
		c.Next()
	}
}

// CapabilityFromContext returns the capability minted by AdminRequired.
// The zero capability grants nothing.
func CapabilityFromContext(c *gin.Context) auth.AdminCapability {
	value, exists := c.Get("admin_capability")
	if !exists {
		return auth.AdminCapability{}
	}
	capability, ok := value.(auth.AdminCapability)
	if !ok {
		return auth.AdminCapability{}
	}
	return capability
}
