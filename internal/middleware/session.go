package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/auth"
	"github.com/team33/casino-gateway/internal/config"
)

// Session extracts the bearer token when present. Gateway-minted demo
// tokens resolve to an account ID in the request context; backend-issued
// tokens are opaque here and simply pass through to the admin API client.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if accountID, err := auth.ParseLocalToken(token, cfg.JWTSecret); err == nil {
				c.Set("account_id", accountID)
			}
		}
		c.Next()
	}
}

// AccountID returns the session-resolved account, or empty
func AccountID(c *gin.Context) string {
	return c.GetString("account_id")
}
