package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/server"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

// NewAPIEngine builds the public server: /health plus every API module
// under /api/v1.
func NewAPIEngine(l *zap.Logger, h config.HTTP, reg *Registry) *gin.Engine {
	r := server.NewRouter(l, "api", h)
	r.Use(mdw.RateLimitPerIP(rate.Limit(h.RatePerSec), h.RateBurst, 10*time.Minute))

	reg.MountAPI(r.Group("/api/v1"))
	return r
}
