// Package config loads sortbench settings from the environment and
// experiment plans from YAML.
package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	DefaultQuadraticLimit = 20000
	DefaultMaxDepth       = 300000
)

// Config holds process configuration.
type Config struct {
	ResultsPath string
	Sink        string

	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	QuadraticLimit int
	MaxDepth       int
	// Seed makes average-case inputs reproducible when set.
	Seed *uint64

	OTelEnabled  bool
	OTLPEndpoint string
	OTLPInsecure bool

	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables. Malformed numeric
// values fall back to their defaults.
func Load() *Config {
	cfg := &Config{
		ResultsPath:    envString("SORTBENCH_RESULTS", "results.csv"),
		Sink:           strings.ToLower(envString("SORTBENCH_SINK", "csv")),
		SQLitePath:     envString("SORTBENCH_SQLITE_PATH", "results.db"),
		DatabaseURL:    os.Getenv("SORTBENCH_DATABASE_URL"),
		RedisAddr:      envString("SORTBENCH_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("SORTBENCH_REDIS_PASSWORD"),
		RedisDB:        envInt("SORTBENCH_REDIS_DB", 0),
		RedisKey:       envString("SORTBENCH_REDIS_KEY", "sortbench:results"),
		QuadraticLimit: envInt("SORTBENCH_QUADRATIC_LIMIT", DefaultQuadraticLimit),
		MaxDepth:       envInt("SORTBENCH_MAX_DEPTH", DefaultMaxDepth),
		OTelEnabled:    os.Getenv("SORTBENCH_OTEL_ENABLED") == "true",
		OTLPEndpoint:   envString("SORTBENCH_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   os.Getenv("SORTBENCH_OTLP_INSECURE") == "true",
		LogLevel:       strings.ToUpper(envString("SORTBENCH_LOG_LEVEL", "WARN")),
		LogFormat:      strings.ToLower(envString("SORTBENCH_LOG_FORMAT", "text")),
	}

	if raw := os.Getenv("SORTBENCH_SEED"); raw != "" {
		if seed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			cfg.Seed = &seed
		}
	}
	if cfg.QuadraticLimit <= 0 {
		cfg.QuadraticLimit = DefaultQuadraticLimit
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
