package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/respond"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
)

const principalKey = "principal"

// Authenticate parses the bearer token and stores the resolved principal on
// the gin context. Everything behind it can trust Principal().
func Authenticate(jwt *security.JWTProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respond.Error(c, apperr.Unauthorized("missing authorization header"))
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			respond.Error(c, apperr.Unauthorized("invalid authorization header"))
			c.Abort()
			return
		}
		principal, err := jwt.Parse(parts[1])
		if err != nil {
			respond.Error(c, err)
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuthenticate resolves a principal when a valid bearer token is
// present but lets anonymous requests through. Public reads use it so owners
// still see their own drafts.
func OptionalAuthenticate(jwt *security.JWTProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if principal, err := jwt.Parse(parts[1]); err == nil {
				c.Set(principalKey, principal)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route group to one role. Admins pass everywhere.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			respond.Error(c, apperr.Unauthorized("not authenticated"))
			c.Abort()
			return
		}
		if principal.Role != role && principal.Role != models.RoleAdmin {
			respond.Error(c, apperr.Forbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func Principal(c *gin.Context) (*security.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(*security.Principal)
	return principal, ok
}
