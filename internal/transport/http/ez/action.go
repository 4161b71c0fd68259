package ez

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-shop/internal/core/dispatch"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // Prepare fills the request from path params
)

// Action mounts request I, whose handler returns O, on one route.
type Action[I dispatch.Request, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool     // require a user id set by AuthJWT
	Roles  []string // optional; checked against the role claim
	// Prepare runs after binding: path params, defaults, trimming.
	Prepare func(c *gin.Context, in *I) error
	// Render shapes the response data; nil sends O as is.
	Render func(out O) any
}

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
	case BindQuery:
		err = c.ShouldBindQuery(in)
	}
	if err == nil {
		return nil
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large", Err: err}
	}
	return &AErr{Code: resp.CodeBadRequest, Msg: "malformed request", Err: err}
}

func authorize(c *gin.Context, roles []string) error {
	if c.GetString(mdw.KeyUserID) == "" {
		return Unauthorized("unauthorized")
	}
	if len(roles) > 0 && !slices.Contains(roles, c.GetString(mdw.KeyRole)) {
		return Forbidden("forbidden")
	}
	return nil
}

// RegisterAction binds the request, sends it through d and writes the
// envelope. The request context (with any Timeout deadline) is passed on.
func RegisterAction[I dispatch.Request, O any](e EZ, d *dispatch.Dispatcher, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			if err := authorize(c, a.Roles); err != nil {
				Fail(c, err)
				return
			}
		}

		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			Fail(c, err)
			return
		}
		if a.Prepare != nil {
			if err := a.Prepare(c, &in); err != nil {
				Fail(c, err)
				return
			}
		}

		out, err := dispatch.Send[O](c.Request.Context(), d, in)
		if err != nil {
			Fail(c, err)
			return
		}
		var data any = out
		if a.Render != nil {
			data = a.Render(out)
		}
		c.JSON(http.StatusOK, resp.OK(data))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
