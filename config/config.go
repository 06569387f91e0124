// Package config loads process configuration and opens the MongoDB and Redis
// connections.
//
// Values are layered: struct defaults, then an optional YAML file
// (CONFIG_PATH or config.yaml), then environment variables. A .env file is
// read into the environment first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"cityhelp-be/classifier"
	"cityhelp-be/logger"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server     ServerConfig      `koanf:"server"`
	Mongo      MongoConfig       `koanf:"mongo"`
	Redis      RedisConfig       `koanf:"redis"`
	Auth       AuthConfig        `koanf:"auth"`
	Classifier classifier.Config `koanf:"classifier"`
	Uploads    UploadsConfig     `koanf:"uploads"`
	RateLimit  RateLimitConfig   `koanf:"rate_limit"`
	Stats      StatsConfig       `koanf:"stats"`
	Logging    logger.Config     `koanf:"logging"`
}

type ServerConfig struct {
	Port           int           `koanf:"port" validate:"min=1,max=65535"`
	Environment    string        `koanf:"environment" validate:"oneof=development production test"`
	Domain         string        `koanf:"domain"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// Production reports whether the server runs in production mode.
func (s ServerConfig) Production() bool { return s.Environment == "production" }

type MongoConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	Database string `koanf:"database" validate:"required"`
}

// RedisConfig is optional; an empty Address disables rate limiting and the
// stats cache.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

func (r RedisConfig) Enabled() bool { return r.Address != "" }

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type UploadsConfig struct {
	Dir      string `koanf:"dir" validate:"required"`
	MaxBytes int64  `koanf:"max_bytes" validate:"gt=0"`
}

type RateLimitConfig struct {
	ReportsPerDay int    `koanf:"reports_per_day" validate:"gte=0"`
	KeyPrefix     string `koanf:"key_prefix"`
}

type StatsConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Environment:    "development",
			CORSOrigins:    []string{"http://localhost:3000"},
			RequestTimeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			Database: "cityhelp",
		},
		Auth: AuthConfig{
			TokenTTL: 72 * time.Hour,
		},
		Classifier: classifier.Config{
			Timeout: 4 * time.Second,
		},
		Uploads: UploadsConfig{
			Dir:      "uploads",
			MaxBytes: 5 << 20,
		},
		RateLimit: RateLimitConfig{
			ReportsPerDay: 10,
			KeyPrefix:     "issue_limit",
		},
		Stats: StatsConfig{
			CacheTTL: 5 * time.Minute,
		},
		Logging: logger.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

var envMappings = map[string]string{
	"port":            "server.port",
	"go_env":          "server.environment",
	"domain":          "server.domain",
	"cors_origins":    "server.cors_origins",
	"request_timeout": "server.request_timeout",

	"mongodb_uri":      "mongo.uri",
	"mongodb_database": "mongo.database",

	"redis_address":  "redis.address",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	"jwt_secret": "auth.jwt_secret",
	"token_ttl":  "auth.token_ttl",

	"hf_api_url":         "classifier.text_endpoint",
	"hf_token":           "classifier.token",
	"image_classify_url": "classifier.image_endpoint",
	"classifier_timeout": "classifier.timeout",

	"upload_dir":       "uploads.dir",
	"upload_max_bytes": "uploads.max_bytes",

	"issue_daily_limit":           "rate_limit.reports_per_day",
	"redis_queue_for_issue_limit": "rate_limit.key_prefix",

	"stats_cache_ttl": "stats.cache_ttl",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

var sliceConfigPaths = []string{"server.cors_origins"}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

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

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// splitSliceFields turns comma-separated env values into lists.
func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
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

// Validate checks struct constraints plus rules that span fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Server.Production() && len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters in production")
	}
	// The text fallback needs time left in the request after the classifier gives up.
	if c.Classifier.Timeout > 0 && 2*c.Classifier.Timeout > c.Server.RequestTimeout {
		return fmt.Errorf("classifier.timeout (%s) must be at most half of server.request_timeout (%s)",
			c.Classifier.Timeout, c.Server.RequestTimeout)
	}
	if c.Classifier.TextEndpoint != "" && c.Classifier.Token == "" {
		logger.Warn().Msg("classifier text endpoint set without a token; keyword rules will be used")
	}
	return nil
}
