package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osantanna/livraria-pos/internal/infrastructure/persistence/redis"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/jwt"
	"github.com/osantanna/livraria-pos/pkg/response"
)

// AuthMiddleware guards the admin-only routes: it extracts the bearer
// token, checks the blacklist and validates the claims.
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

const tokenContextKey = "access_token"

// RequireAdmin aborts the request unless it carries a valid, unrevoked
// admin token. The raw token is stashed in the gin context so the logout
// handler can blacklist it.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}
		tokenString := parts[1]

		if m.sessionStore != nil {
			blacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if blacklisted {
				response.Error(c, apperrors.ErrTokenExpired)
				c.Abort()
				return
			}
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if claims.Role != jwt.RoleAdmin {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(tokenContextKey, tokenString)
		c.Next()
	}
}

// GetAccessToken returns the raw bearer token stashed by RequireAdmin.
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get(tokenContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
