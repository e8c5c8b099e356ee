// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkrights/ledger-backend/internal/utils"
)

// AuthRequired resolves the trusted caller identity from a bearer token
// and places it in the context as "caller". Every mutating ledger route
// requires it; the ledger itself never authenticates users beyond this.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "invalid or expired token")
			c.Abort()
			return
		}

		caller, err := uuid.Parse(claims.Address)
		if err != nil || caller == uuid.Nil {
			utils.UnauthorizedResponse(c, "invalid caller identity")
			c.Abort()
			return
		}

		c.Set("caller", caller)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present but
// lets anonymous reads through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if claims, err := utils.ValidateJWT(parts[1]); err == nil {
			if caller, err := uuid.Parse(claims.Address); err == nil && caller != uuid.Nil {
				c.Set("caller", caller)
			}
		}
		c.Next()
	}
}
