package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type config struct {
	Port           int
	Storage        string
	DatabaseURL    string
	MigrationsPath string
	RequestTimeout time.Duration
	JWTSecret      string
	TestData       bool
	LogLevel       string
	LimiterEnabled bool
	LimiterRPS     float64
	LimiterBurst   int
}

/* Reads the configuration from the command line. Every flag defaults to its environment variable. */
func loadConfig(args []string, getenv func(string) string) (config, error) {
	var cfg config
	fs := pflag.NewFlagSet("catalog-service", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&cfg.Port, "port", envInt(getenv, "PORT", 8080), "HTTP port to listen on")
	fs.StringVar(&cfg.Storage, "storage", envString(getenv, "CATALOG_STORAGE", storagePostgres), "book store: postgres|memory")
	fs.StringVar(&cfg.DatabaseURL, "database-url", getenv("DATABASE_URL"), "postgres connection string")
	fs.StringVar(&cfg.MigrationsPath, "migrations-path", envString(getenv, "DATABASE_MIGRATIONS_PATH", "migrations"), "directory holding the database migrations")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", envDuration(getenv, "HTTP_REQUEST_TIMEOUT", 5*time.Second), "deadline of every request, with a unit suffix")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", getenv("JWT_SECRET"), "HMAC secret verifying bearer tokens")
	fs.BoolVar(&cfg.TestData, "testdata", envBool(getenv, "CATALOG_TESTDATA", false), "replace the catalog content with demo books at startup")
	fs.StringVar(&cfg.LogLevel, "log-level", envString(getenv, "LOG_LEVEL", "info"), "debug|info|warn|error")
	fs.BoolVar(&cfg.LimiterEnabled, "limiter-enabled", envBool(getenv, "LIMITER_ENABLED", true), "enable per client rate limiting")
	fs.Float64Var(&cfg.LimiterRPS, "limiter-rps", envFloat(getenv, "LIMITER_RPS", 10), "requests per second allowed to each client")
	fs.IntVar(&cfg.LimiterBurst, "limiter-burst", envInt(getenv, "LIMITER_BURST", 20), "burst allowed to each client")

	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("parsing flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (cfg config) validate() error {
	var errs []error
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", cfg.Port))
	}
	switch cfg.Storage {
	case storagePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("postgres storage needs a database url"))
		}
	case storageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", cfg.Storage))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("a jwt secret is required"))
	}
	if _, err := levelOption(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if cfg.LimiterEnabled && (cfg.LimiterRPS <= 0 || cfg.LimiterBurst <= 0) {
		errs = append(errs, errors.New("limiter rps and burst must be positive"))
	}
	return errors.Join(errs...)
}

func levelOption(lvl string) (level.Option, error) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
}

/* Builds the logfmt logger filtered at the configured level. The filter goes first so
that caller reports the line that logged, not the filter. */
func newLogger(w io.Writer, lvl string) log.Logger {
	option, err := levelOption(lvl)
	if err != nil {
		option = level.AllowInfo()
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, option)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, key string, def int) int {
	if v, err := strconv.Atoi(getenv(key)); err == nil {
		return v
	}
	return def
}

func envFloat(getenv func(string) string, key string, def float64) float64 {
	if v, err := strconv.ParseFloat(getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envBool(getenv func(string) string, key string, def bool) bool {
	if v, err := strconv.ParseBool(getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(getenv func(string) string, key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(key)); err == nil {
		return v
	}
	return def
}
