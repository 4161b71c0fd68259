package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/domain"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

// NewAdminEngine builds the admin server. Everything under /admin/v1
// requires an Admin token; /health and /metrics are open and the server is
// expected to listen on a private address.
func NewAdminEngine(l *zap.Logger, h config.HTTP, reg *Registry, tokens mdw.TokenParser) *gin.Engine {
	r := server.NewRouter(l, "admin", h)
	r.Use(mdw.RateLimit(rate.Limit(h.RatePerSec), h.RateBurst))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1", mdw.AuthJWT(tokens, domain.RoleAdmin))
	reg.MountAdmin(admin)
	return r
}
