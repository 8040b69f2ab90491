package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

// SelfRole is the pseudo-role understood by RBAC. It admits the caller
// whose user ID equals the :id route parameter, whatever their real role.
const SelfRole = "SELF"

// RBAC admits callers holding one of the listed roles. The allowed set is
// parsed once when the route is mounted.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowSelf := false
	roles := make(map[models.UserRole]struct{}, len(allowed))
	for _, a := range allowed {
		if a == SelfRole {
			allowSelf = true
			continue
		}
		roles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, ok := c.Get(ContextUserKey)
		if !ok {
			abort(c, appErrors.ErrUnauthorized)
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			abort(c, appErrors.ErrUnauthorized)
			return
		}

		if _, ok := roles[claims.Role]; ok {
			c.Next()
			return
		}
		if allowSelf && claims.UserID != "" && claims.UserID == c.Param("id") {
			c.Next()
			return
		}

		abort(c, appErrors.ErrForbidden)
	}
}

// RequireRoles adapts typed roles onto RBAC.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}
