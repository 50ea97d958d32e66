package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"emkaan/api/internal/config"
	"emkaan/api/internal/models"
	"emkaan/api/internal/security"
)

// CurrentUserKey is where the auth middleware stores the acting principal.
const CurrentUserKey = "current_user"

// PrincipalLoader resolves a token subject to a live principal. A deleted
// user invalidates every token it ever held.
type PrincipalLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// Auth resolves the bearer token to a principal and stores it in the
// request context. Anything short of a valid token naming an existing user
// terminates the request with 401.
func Auth(cfg *config.AppConfig, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not found"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the principal placed by Auth, if any.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
