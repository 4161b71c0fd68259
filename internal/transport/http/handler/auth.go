// Package handler adapts feature requests to HTTP routes. Modules are
// mounted by the router registry.
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/feature/user"
	"go-gin-gorm-shop/internal/transport/http/ez"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

type AuthModule struct {
	d      *dispatch.Dispatcher
	tokens mdw.TokenParser
}

func NewAuthModule(d *dispatch.Dispatcher, tokens mdw.TokenParser) *AuthModule {
	return &AuthModule{d: d, tokens: tokens}
}

func (m *AuthModule) Priority() int { return 10 }

type meOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}

// MountAPI: POST /auth/register, POST /auth/login, GET /me.
func (m *AuthModule) MountAPI(api *gin.RouterGroup) {
	pub := ez.New(api)

	ez.RegisterAction(pub, m.d, ez.Action[user.RegisterCommand, uuid.UUID]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Prepare: func(_ *gin.Context, in *user.RegisterCommand) error {
			in.Email = strings.TrimSpace(in.Email)
			in.Role = strings.TrimSpace(in.Role)
			return nil
		},
		Render: func(id uuid.UUID) any { return gin.H{"id": id} },
	})

	ez.RegisterAction(pub, m.d, ez.Action[user.LoginCommand, string]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Prepare: func(_ *gin.Context, in *user.LoginCommand) error {
			in.Email = strings.TrimSpace(in.Email)
			return nil
		},
		Render: func(tok string) any { return gin.H{"token": tok, "tokenType": "Bearer"} },
	})

	// token only, no store access
	authed := ez.New(api.Group("", mdw.AuthJWT(m.tokens)))
	authed.GET("/me", func(c *gin.Context) (any, error) {
		cl, ok := mdw.ClaimsFrom(c)
		if !ok {
			return nil, ez.Unauthorized("unauthorized")
		}
		out := meOut{ID: cl.UID(), Email: cl.Email, Role: cl.Role}
		if cl.ExpiresAt != nil {
			out.Exp = cl.ExpiresAt.Unix()
		}
		return out, nil
	})
}
