// Package ez mounts dispatcher requests on gin routes with one call each.
package ez

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-gin-gorm-shop/internal/domain"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// GET mounts a plain handler that does not go through the dispatcher.
func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

// AErr is a transport-level failure (bad path parameter, oversize body).
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }

var kindCodes = map[domain.Kind]int{
	domain.KindValidation:     resp.CodeBadRequest,
	domain.KindConflict:       resp.CodeConflict,
	domain.KindUnauthorized:   resp.CodeUnauthorized,
	domain.KindNotFound:       resp.CodeNotFound,
	domain.KindAlreadyDeleted: resp.CodeConflict,
	domain.KindNoHandler:      resp.CodeServerError,
}

// Translate maps err to an envelope. Only domain and AErr messages reach
// the client; anything else is reported as a bare internal error.
func Translate(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return resp.Error(ae.Code, ae.Error())
	}
	var de *domain.Error
	if errors.As(err, &de) {
		code, ok := kindCodes[de.Kind]
		if !ok {
			code = resp.CodeServerError
		}
		if code == resp.CodeServerError {
			return resp.Error(code, "")
		}
		if len(de.Fields) > 0 {
			return resp.ErrorData(code, de.Message, gin.H{"fields": de.Fields})
		}
		return resp.Error(code, de.Message)
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return resp.Error(resp.CodeTimeout, "timeout")
	case errors.Is(err, context.Canceled):
		return resp.Error(resp.CodeUnavailable, "request canceled")
	}
	return resp.Error(resp.CodeServerError, "")
}

// Fail writes the envelope for err. Server-side failures are attached to
// the gin context so the access log records the cause.
func Fail(c *gin.Context, err error) {
	r := Translate(err)
	if r.Code >= resp.CodeServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(http.StatusOK, r)
}

// ParamUUID parses a path parameter as a uuid.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, BadRequest("invalid " + name)
	}
	return id, nil
}
