package ez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/domain"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ValidationFailed("invalid x", map[string]string{"Name": "required"}), resp.CodeBadRequest, "invalid x"},
		{domain.Conflict("user already exists"), resp.CodeConflict, "user already exists"},
		{domain.Unauthorized("invalid credentials"), resp.CodeUnauthorized, "invalid credentials"},
		{fmt.Errorf("wrapped: %w", domain.NotFound("product not found")), resp.CodeNotFound, "product not found"},
		{domain.AlreadyDeleted("gone"), resp.CodeConflict, "gone"},
		{domain.NoHandlerRegistered("x"), resp.CodeServerError, "Internal Server Error"},
		{context.DeadlineExceeded, resp.CodeTimeout, "timeout"},
		{fmt.Errorf("q: %w", context.Canceled), resp.CodeUnavailable, "request canceled"},
		{BadRequest("invalid id"), resp.CodeBadRequest, "invalid id"},
		{errors.New("pq: connection refused"), resp.CodeServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		r := Translate(tc.err)
		assert.Equal(t, tc.code, r.Code, tc.err.Error())
		assert.Equal(t, tc.msg, r.Msg, tc.err.Error())
	}

	r := Translate(domain.ValidationFailed("bad", map[string]string{"Price": "gt"}))
	assert.Equal(t, gin.H{"fields": map[string]string{"Price": "gt"}}, r.Data)
}

type echoReq struct {
	ID   string `json:"-"`
	Text string `json:"text" validate:"required"`
}

func (echoReq) RequestName() string { return "test.Echo" }

func newEngine(t *testing.T, a Action[echoReq, string]) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d := dispatch.New(nil, nil)
	dispatch.Register(d, func(_ context.Context, r echoReq) (string, error) {
		if r.Text == "missing" {
			return "", domain.NotFound("no such thing")
		}
		return r.ID + ":" + r.Text, nil
	})
	r := gin.New()
	g := r.Group("")
	g.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Uid"); uid != "" {
			c.Set(mdw.KeyUserID, uid)
			c.Set(mdw.KeyRole, c.GetHeader("X-Role"))
		}
	})
	RegisterAction(New(g), d, a)
	return r
}

func do(r *gin.Engine, req *http.Request) resp.Resp {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestRegisterAction(t *testing.T) {
	r := newEngine(t, Action[echoReq, string]{
		Method: http.MethodPut,
		Path:   "/echo/:id",
		Binder: BindJSON,
		Prepare: func(c *gin.Context, in *echoReq) error {
			in.ID = c.Param("id")
			return nil
		},
		Render: func(s string) any { return gin.H{"echo": s} },
	})

	out := do(r, httptest.NewRequest(http.MethodPut, "/echo/7", strings.NewReader(`{"text":"hi"}`)))
	assert.Equal(t, resp.CodeOK, out.Code)
	assert.Equal(t, map[string]any{"echo": "7:hi"}, out.Data)

	out = do(r, httptest.NewRequest(http.MethodPut, "/echo/7", strings.NewReader(`{"text":""}`)))
	assert.Equal(t, resp.CodeBadRequest, out.Code)

	out = do(r, httptest.NewRequest(http.MethodPut, "/echo/7", strings.NewReader(`{not json`)))
	assert.Equal(t, resp.CodeBadRequest, out.Code)
	assert.Equal(t, "malformed request", out.Msg)

	out = do(r, httptest.NewRequest(http.MethodPut, "/echo/7", strings.NewReader(`{"text":"missing"}`)))
	assert.Equal(t, resp.CodeNotFound, out.Code)
	assert.Equal(t, "no such thing", out.Msg)
}

func TestRegisterAction_AuthAndRoles(t *testing.T) {
	r := newEngine(t, Action[echoReq, string]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Auth:   true,
		Roles:  []string{"Admin"},
	})
	req := func(uid, role string) *http.Request {
		q := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"text":"hi"}`))
		if uid != "" {
			q.Header.Set("X-Uid", uid)
			q.Header.Set("X-Role", role)
		}
		return q
	}
	assert.Equal(t, resp.CodeUnauthorized, do(r, req("", "")).Code)
	assert.Equal(t, resp.CodeForbidden, do(r, req("u1", "Customer")).Code)

	out := do(r, req("u1", "Admin"))
	require.Equal(t, resp.CodeOK, out.Code)
	assert.Equal(t, ":hi", out.Data)
}
