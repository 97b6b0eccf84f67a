package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/platyfa/platyfa-api/internal/config"
	"github.com/platyfa/platyfa-api/internal/security"
)

// RestorePath is the one route a soft-deleted identity may still reach, so a
// deleted player can restore their own account.
const RestorePath = "/api/players/restore"

// claimsContextKey is the gin context key holding the verified token claims.
const claimsContextKey = "playerClaims"

// PlayerAuthMiddleware validates the bearer token and attaches its claims to
// the request context. It is pure validation: no database lookup, no retries.
// Soft-deleted subjects are rejected everywhere except RestorePath.
func PlayerAuthMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token not valid"})
			return
		}

		if claims.IsDeleted && c.FullPath() != RestorePath {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "account is deleted"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// AdminOnly restricts a route to privileged accounts. It must run after
// PlayerAuthMiddleware since it reads the claims that middleware attached.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token not provided"})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access restricted to admins only"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims attached by
// PlayerAuthMiddleware.
func ClaimsFromContext(c *gin.Context) (*security.PlayerClaims, bool) {
	val, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*security.PlayerClaims)
	return claims, ok
}
