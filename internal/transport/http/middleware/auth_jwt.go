package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-shop/internal/core/auth"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthJWT requires a valid bearer token and, when roles are given, a role
// claim matching one of them. Claims, user id and role are stored on the
// gin context.
func AuthJWT(p TokenParser, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		tok, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || strings.TrimSpace(tok) == "" {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := p.Parse(strings.TrimSpace(tok))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID())
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthJWT.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*auth.Claims)
	return cl, ok
}
