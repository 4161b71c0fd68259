// Package config loads settings from a YAML file plus APP_ prefixed
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"go-gin-gorm-shop/internal/domain"
)

const DefaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// RequestTimeoutSec bounds each request's context; 0 disables it.
	RequestTimeoutSec int
	MaxBodyBytes      int64
	MaxInFlight       int64
	RatePerSec        float64
	RateBurst         int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin HTTP
}

type Rotate struct {
	Filename   string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	Audience          string
	AccessTokenTTLMin int
}

type Auth struct {
	BcryptCost int
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Catalog struct {
	LowStockThreshold int
	DefaultPageSize   int
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Auth    Auth
	DB      DB
	Catalog Catalog
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shop")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 5)
	v.SetDefault("app.http.maxBodyBytes", 1<<20)
	v.SetDefault("app.http.maxInFlight", 256)
	v.SetDefault("app.http.ratePerSec", 20)
	v.SetDefault("app.http.rateBurst", 40)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.admin.readTimeoutSec", 5)
	v.SetDefault("app.admin.writeTimeoutSec", 10)
	v.SetDefault("app.admin.idleTimeoutSec", 60)
	v.SetDefault("app.admin.requestTimeoutSec", 10)
	v.SetDefault("app.admin.maxBodyBytes", 1<<20)
	v.SetDefault("app.admin.maxInFlight", 64)
	v.SetDefault("app.admin.ratePerSec", 0)
	v.SetDefault("app.admin.rateBurst", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.rotate.filename", "")
	v.SetDefault("log.rotate.maxSizeMB", 100)
	v.SetDefault("log.rotate.maxBackups", 7)
	v.SetDefault("log.rotate.maxAgeDays", 30)
	v.SetDefault("log.rotate.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "shop")
	v.SetDefault("jwt.audience", "shop-clients")
	v.SetDefault("jwt.accessTokenTTLMin", 60)

	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:shop.db?_foreign_keys=on")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("catalog.lowStockThreshold", 10)
	v.SetDefault("catalog.defaultPageSize", 10)
}

// Load reads path (CONFIG_PATH or DefaultPath when empty). A missing file is
// not an error; defaults and environment fill everything in.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
		}
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		errs = append(errs, errors.New("jwt.accessTokenTTLMin must be positive"))
	}
	if c.Catalog.LowStockThreshold < 0 {
		errs = append(errs, errors.New("catalog.lowStockThreshold must not be negative"))
	}
	if c.Catalog.DefaultPageSize < 1 || c.Catalog.DefaultPageSize > domain.MaxPageSize {
		errs = append(errs, fmt.Errorf("catalog.defaultPageSize must be between 1 and %d", domain.MaxPageSize))
	}
	return errors.Join(errs...)
}
