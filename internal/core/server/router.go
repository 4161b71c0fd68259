// Package server holds the gin engine and http.Server setup shared by both
// binaries.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/config"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
)

// NewRouter returns an engine with the common middleware chain and /health.
// name labels the server's metrics. The deadline is set before the
// concurrency gate so time spent queued counts against it.
func NewRouter(l *zap.Logger, name string, h config.HTTP) *gin.Engine {
	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.AccessLog(l),
		mdw.Metrics(name),
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", mdw.HeaderRequestID},
			ExposeHeaders:    []string{mdw.HeaderRequestID},
			MaxAge:           12 * time.Hour,
			AllowCredentials: false,
		}),
		mdw.MaxBodyBytes(h.MaxBodyBytes),
		mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second),
		mdw.ConcurrencyLimit(h.MaxInFlight),
	)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	return r
}

func BuildServer(h config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           Addr(h.Host, h.Port),
		Handler:        handler,
		ReadTimeout:    time.Duration(h.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(h.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(h.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// Run serves until ctx is done, then shuts down within grace.
func Run(ctx context.Context, srv *http.Server, l *zap.Logger, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		l.Info("http starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	l.Info("http stopped", zap.String("addr", srv.Addr))
	return nil
}
