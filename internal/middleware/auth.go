package middleware

import (
	"net/http"
	"strings"

	"healthoffice_backend/internal/auth"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose token lacks the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		if roleStr, ok := roleVal.(string); !ok || roleStr != role {
			c.AbortWithStatusJSON(apperrors.ErrInsufficientPermissions.HTTPCode,
				apperrors.ErrorResponse{Error: apperrors.ErrInsufficientPermissions})
			return
		}
		c.Next()
	}
}

// AdminGate wraps mutation routes. Whether it enforces anything is a
// per-deployment toggle; when disabled it passes every request through.
// Both checks run inline before the handler chain continues: calling
// another middleware here would hand control to the wrapped handler via
// its c.Next() before the role was ever examined.
func AdminGate(enabled bool, issuer *auth.TokenIssuer) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := issuer.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(apperrors.ErrInsufficientPermissions.HTTPCode,
				apperrors.ErrorResponse{Error: apperrors.ErrInsufficientPermissions})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
