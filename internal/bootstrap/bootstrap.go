// Package bootstrap wires repositories, auth services, handlers and HTTP
// modules by explicit construction. Both binaries start from New.
package bootstrap

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/database"
	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/feature/product"
	"go-gin-gorm-shop/internal/feature/user"
	"go-gin-gorm-shop/internal/repo"
	"go-gin-gorm-shop/internal/transport/http/handler"
	"go-gin-gorm-shop/internal/transport/http/router"
)

type App struct {
	Cfg        *config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	Tokens     *auth.JWTer
	Dispatcher *dispatch.Dispatcher
	Registry   *router.Registry
}

// New opens the database from cfg and wires everything on top of it.
func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	app, err := NewWithDB(cfg, l, db)
	if err != nil {
		if sqlDB, e := db.DB(); e == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return app, nil
}

// NewWithDB wires on an already opened database.
func NewWithDB(cfg *config.Config, l *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience,
		time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute)

	d := dispatch.New(l.Named("dispatch"), dispatch.NewValidator())
	user.NewHandlers(users, hasher, tokens, l.Named("user")).Register(d)
	product.NewHandlers(products, l.Named("product")).Register(d)

	reg := router.NewRegistry(
		handler.NewAuthModule(d, tokens),
		handler.NewProductModule(d, cfg.Catalog),
	)

	return &App{
		Cfg:        cfg,
		Log:        l,
		DB:         db,
		Tokens:     tokens,
		Dispatcher: d,
		Registry:   reg,
	}, nil
}

func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return sqlDB.Close()
}
