package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "STOREFINDER_CONFIG"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{"config.yaml", "config.yml"}

// envMappings maps environment variable names to koanf paths. Variables not
// listed here are ignored.
var envMappings = map[string]string{
	"APP_ENV":                   "env",
	"LOG_LEVEL":                 "log.level",
	"HTTP_ADDR":                 "http.addr",
	"API_ALLOWED_ORIGINS":       "http.allowed_origins",
	"QUERY_TIMEOUT":             "http.query_timeout",
	"STORAGE_DRIVER":            "storage.driver",
	"MONGO_URI":                 "mongo.uri",
	"MONGO_DB":                  "mongo.database",
	"STORE_COLLECTION":          "mongo.store_collection",
	"REVIEW_COLLECTION":         "mongo.review_collection",
	"USER_COLLECTION":           "mongo.user_collection",
	"MONGO_CONNECT_TIMEOUT":     "mongo.connect_timeout",
	"AUTH_JWT_SECRET":           "auth.jwt_secret",
	"AUTH_JWT_ISSUER":           "auth.jwt_issuer",
	"AUTH_JWT_AUDIENCE":         "auth.jwt_audience",
	"RATE_LIMIT_REQUESTS":       "rate_limit.requests",
	"RATE_LIMIT_WINDOW":         "rate_limit.window",
	"BREAKER_FAILURE_THRESHOLD": "breaker.failure_threshold",
	"BREAKER_OPEN_TIMEOUT":      "breaker.open_timeout",
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{"http.allowed_origins"}

func defaultConfig() *Config {
	return &Config{
		Env: "local",
		Log: LogConfig{Level: "info"},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			QueryTimeout:   5 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverMongo},
		Mongo: MongoConfig{
			URI:              "mongodb://localhost:27017",
			Database:         "storefinder",
			StoreCollection:  "stores",
			ReviewCollection: "reviews",
			UserCollection:   "users",
			ConnectTimeout:   10 * time.Second,
		},
		Limit: LimitConfig{Requests: 100, Window: time.Minute},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
		},
	}
}

// Load layers defaults, the optional YAML file and environment variables,
// in increasing priority, and validates the result.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadMongo is Load for tools that only talk to MongoDB, such as the seeder.
func LoadMongo() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateMongo(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := strings.TrimSpace(os.Getenv(PathEnvVar)); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc returns "" for unmapped variables, which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[key]
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := make([]string, 0)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
