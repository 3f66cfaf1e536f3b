package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Env     string        `koanf:"env"`
	Log     LogConfig     `koanf:"log"`
	HTTP    HTTPConfig    `koanf:"http"`
	Storage StorageConfig `koanf:"storage"`
	Mongo   MongoConfig   `koanf:"mongo"`
	Auth    AuthConfig    `koanf:"auth"`
	Limit   LimitConfig   `koanf:"rate_limit"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// HTTPConfig controls the listener and CORS.
type HTTPConfig struct {
	Addr           string        `koanf:"addr"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
}

// StorageConfig selects the repository implementation.
type StorageConfig struct {
	Driver string `koanf:"driver"`
}

// MongoConfig locates the database and its collections.
type MongoConfig struct {
	URI              string        `koanf:"uri"`
	Database         string        `koanf:"database"`
	StoreCollection  string        `koanf:"store_collection"`
	ReviewCollection string        `koanf:"review_collection"`
	UserCollection   string        `koanf:"user_collection"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"`
}

// AuthConfig verifies bearer tokens. Issuer and Audience are optional.
type AuthConfig struct {
	JWTSecret   string `koanf:"jwt_secret"`
	JWTIssuer   string `koanf:"jwt_issuer"`
	JWTAudience string `koanf:"jwt_audience"`
}

// LimitConfig is the per-IP request budget.
type LimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// BreakerConfig tunes the repository circuit breaker.
type BreakerConfig struct {
	FailureThreshold uint32        `koanf:"failure_threshold"`
	OpenTimeout      time.Duration `koanf:"open_timeout"`
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Env {
	case "prod", "local", "dev", "test":
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of prod, local, dev, test: got %q", c.Env))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be configured"))
	}
	switch c.Storage.Driver {
	case DriverMongo:
		errs = append(errs, c.Mongo.validate()...)
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q: got %q", DriverMongo, DriverMemory, c.Storage.Driver))
	}
	if c.HTTP.QueryTimeout <= 0 {
		errs = append(errs, errors.New("QUERY_TIMEOUT must be positive"))
	}
	if c.Limit.Requests <= 0 || c.Limit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}
	if c.Breaker.FailureThreshold == 0 || c.Breaker.OpenTimeout <= 0 {
		errs = append(errs, errors.New("BREAKER_FAILURE_THRESHOLD and BREAKER_OPEN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateMongo checks only the settings needed to reach MongoDB.
func (c *Config) ValidateMongo() error {
	return errors.Join(c.Mongo.validate()...)
}

func (m MongoConfig) validate() []error {
	var errs []error
	if strings.TrimSpace(m.URI) == "" {
		errs = append(errs, errors.New("MONGO_URI must be configured for the mongo driver"))
	}
	if strings.TrimSpace(m.Database) == "" {
		errs = append(errs, errors.New("MONGO_DB must be configured for the mongo driver"))
	}
	if m.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("MONGO_CONNECT_TIMEOUT must be positive"))
	}
	if strings.TrimSpace(m.StoreCollection) == "" || strings.TrimSpace(m.ReviewCollection) == "" || strings.TrimSpace(m.UserCollection) == "" {
		errs = append(errs, errors.New("collection names must not be empty"))
	}
	return errs
}
