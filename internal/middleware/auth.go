package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/auth"
)

const claimsKey = "authClaims"

// Auth validates the bearer token and, when a role is given, requires the
// token's role claim to match. A missing or bad token is 401; a role
// mismatch is 403.
func Auth(tm *auth.TokenManager, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Auth Failed"})
			return
		}

		claims, err := tm.Validate(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Auth Failed"})
			return
		}

		if requiredRole != "" && claims.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Access denied"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil on unauthenticated
// routes.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
