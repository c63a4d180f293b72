package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/pkg/auth"
)

// Context keys set by RequireAuth
const (
	PersonIDKey = "person_id"
	RoleKey     = "role"
)

// TokenParser validates access tokens
type TokenParser interface {
	ParseToken(token string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware authenticates requests with bearer tokens
type AuthMiddleware struct {
	tokens TokenParser
}

// NewAuthMiddleware creates the middleware
func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth checks the Authorization header and stores the caller in the context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			return
		}

		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			errorType := "token_invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				errorType = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errorType})
			return
		}

		c.Set(PersonIDKey, claims.PersonID)
		c.Set(RoleKey, entity.Role(claims.Role))
		c.Next()
	}
}

// RequireRole lets through callers holding one of roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(RoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		role, _ := value.(entity.Role)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

// StaffOnly is RequireRole for teachers and admins
func (m *AuthMiddleware) StaffOnly() gin.HandlerFunc {
	return m.RequireRole(entity.RoleTeacher, entity.RoleAdmin)
}

// AdminOnly is RequireRole for admins
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)
}

// CurrentPersonID returns the authenticated person's id
func CurrentPersonID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(PersonIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
