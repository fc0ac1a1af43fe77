// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = 8080
	defaultEnvFile         = ".env"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Service         string
	Port            int
	LogLevel        string
	ShutdownTimeout time.Duration

	SeedProducts bool

	MetricsEnabled bool
	MetricsToken   string

	// WriteRateLimit caps POST/PUT/DELETE per client IP per minute. Zero disables it.
	WriteRateLimit int

	TraceExporter string
	OTLPEndpoint  string

	// Warnings collects values that were rejected in favour of defaults.
	Warnings []string
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load merges the optional dotenv file named by ENV_FILE (default .env) into the
// environment, without overriding variables already set, then reads the config.
func Load() (Config, error) {
	if err := loadEnvFile(getenv("ENV_FILE", defaultEnvFile)); err != nil {
		return Config{}, err
	}

	l := &loader{}
	c := Config{
		Service:         getenv("SERVICE_NAME", "catalog"),
		Port:            l.port("PORT", defaultPort),
		LogLevel:        strings.ToLower(getenv("LOG_LEVEL", "info")),
		ShutdownTimeout: l.seconds("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SeedProducts:    l.boolean("SEED_PRODUCTS", true),
		MetricsEnabled:  l.boolean("METRICS_ENABLED", true),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		WriteRateLimit:  l.nonNegative("WRITE_RATE_LIMIT", 0),
		TraceExporter:   strings.ToLower(getenv("TRACE_EXPORTER", "none")),
		OTLPEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
	c.Warnings = l.warnings
	return c, nil
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type loader struct {
	warnings []string
}

func (l *loader) warn(key, val string, def any) {
	l.warnings = append(l.warnings, fmt.Sprintf("invalid %s value %q, using %v", key, val, def))
}

func (l *loader) port(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 65535 {
		l.warn(key, v, def)
		return def
	}
	return n
}

func (l *loader) nonNegative(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		l.warn(key, v, def)
		return def
	}
	return n
}

func (l *loader) seconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		l.warn(key, v, def)
		return def
	}
	return time.Duration(n) * time.Second
}

func (l *loader) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.warn(key, v, def)
		return def
	}
	return b
}
