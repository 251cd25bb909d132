package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/auth"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
)

const identityKey = "identity"

// Authenticate verifies the bearer credential and stores the caller identity
// in the request context. Requests without a valid token are rejected before
// any handler runs.
func Authenticate(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.Unauthorized("Missing Authorization header", nil))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, apperrors.Unauthorized("Authorization header must be: Bearer <token>", nil))
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			abort(c, apperrors.Unauthorized("Token invalid or expired", err))
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// RequireRole short-circuits with Forbidden unless the authenticated caller
// has the expected role. Must run after Authenticate.
func RequireRole(role account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, apperrors.Unauthorized("Not authenticated", nil))
			return
		}
		if identity.Role != role {
			abort(c, apperrors.Forbidden("Insufficient role", nil))
			return
		}
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity from the context
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.Status, gin.H{"code": err.Code, "error": err.Message})
}
