// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	Log struct {
		// Level is one of debug, info, warn, error
		Level string `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
		// Format is text (colored, for terminals) or json
		Format string `env:"LOG_FORMAT" env-default:"text" yaml:"format"`
	} `yaml:"log"`

	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"1m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"15s" yaml:"requestTimeout"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigin is the CORS Access-Control-Allow-Origin value
		AllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" env-default:"*" yaml:"allowedOrigin"`
	} `yaml:"http"`

	Database struct {
		// Path is the SQLite database file
		Path string `env:"DB_PATH" env-default:"./data/ledger.db" yaml:"path"`
		// OpTimeout bounds every storage call
		OpTimeout time.Duration `env:"DB_OP_TIMEOUT" env-default:"5s" yaml:"opTimeout"`
		// BusyTimeout is how long a writer waits for the SQLite write lock
		BusyTimeout time.Duration `env:"DB_BUSY_TIMEOUT" env-default:"5s" yaml:"busyTimeout"`
	} `yaml:"database"`

	JWT struct {
		// Secret signs HS256 session tokens
		Secret string `env:"JWT_SECRET" yaml:"secret"`
		// TokenDuration is how long issued tokens stay valid
		TokenDuration time.Duration `env:"JWT_TOKEN_DURATION" env-default:"24h" yaml:"tokenDuration"`
	} `yaml:"jwt"`

	Ledger struct {
		// UserExpenseLimit is the default page size of user expense listings
		UserExpenseLimit int `env:"USER_EXPENSE_LIMIT" env-default:"100" yaml:"userExpenseLimit"`
		// UserExpenseMaxLimit caps caller-supplied page sizes
		UserExpenseMaxLimit int `env:"USER_EXPENSE_MAX_LIMIT" env-default:"1000" yaml:"userExpenseMaxLimit"`
	} `yaml:"ledger"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"`
}

// Load reads an optional dotenv file into the process environment and then
// fills Config from environment variables. A missing default ".env" file is
// not an error; a missing explicitly named file is.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("could not load env file %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if c.Database.OpTimeout < 0 || c.Database.BusyTimeout < 0 {
		errs = append(errs, errors.New("database timeouts cannot be negative"))
	}
	if c.JWT.TokenDuration <= 0 {
		errs = append(errs, errors.New("JWT_TOKEN_DURATION must be positive"))
	}
	if c.Ledger.UserExpenseLimit <= 0 {
		errs = append(errs, errors.New("USER_EXPENSE_LIMIT must be positive"))
	}
	if c.Ledger.UserExpenseMaxLimit < c.Ledger.UserExpenseLimit {
		errs = append(errs, errors.New("USER_EXPENSE_MAX_LIMIT must be at least USER_EXPENSE_LIMIT"))
	}

	return errors.Join(errs...)
}

// RequireServeSecrets checks the settings only the HTTP server needs.
func (c *Config) RequireServeSecrets() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required to serve")
	}
	return nil
}
