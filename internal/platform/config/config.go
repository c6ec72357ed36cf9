package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cattle-records/internal/platform/logger"

	"golang.org/x/text/language"
)

// Backends de layout aceptados en LAYOUT_STORE.
const (
	LayoutMemory   = "memory"
	LayoutBadger   = "badger"
	LayoutRedis    = "redis"
	LayoutPostgres = "postgres"
)

// Config reúne todo lo que se lee del entorno al arrancar.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Sources SourcesConfig
	Auth    AuthConfig
	Log     logger.Options

	// Collation para ordenar columnas de texto (COLLATION_LOCALE, BCP 47).
	Collation language.Tag
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StorageConfig struct {
	LayoutStore string
	DBDSN       string
	BadgerPath  string
	RedisURL    string
}

// SourcesConfig: de dónde salen los registros y las tablas de referencia.
// Sin URL ni archivo se usa un set en memoria (modo dev).
type SourcesConfig struct {
	RecordsURL     string
	MasterDataURL  string
	SnapshotFile   string
	UpstreamToken  string
	MasterDataTTL  time.Duration
	RequestTimeout time.Duration
}

// AuthConfig: verificador de tokens del IAM. Sin BaseURL se usa modo dev
// (header X-Debug-User-ID).
type AuthConfig struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
}

// Enabled indica si hay IAM configurado.
func (a AuthConfig) Enabled() bool {
	return a.BaseURL != ""
}

// Load lee el entorno y valida.
func Load() (*Config, error) {
	collation, err := parseLocale(getEnv("COLLATION_LOCALE", "und"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			LayoutStore: strings.ToLower(getEnv("LAYOUT_STORE", LayoutMemory)),
			DBDSN:       os.Getenv("DB_DSN"),
			BadgerPath:  getEnv("BADGER_PATH", "./data/layout"),
			RedisURL:    os.Getenv("REDIS_URL"),
		},
		Sources: SourcesConfig{
			RecordsURL:     os.Getenv("RECORDS_SOURCE_URL"),
			MasterDataURL:  os.Getenv("MASTERDATA_SOURCE_URL"),
			SnapshotFile:   os.Getenv("SNAPSHOT_FILE"),
			UpstreamToken:  os.Getenv("UPSTREAM_TOKEN"),
			MasterDataTTL:  getEnvDuration("MASTERDATA_CACHE_TTL", 5*time.Minute),
			RequestTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			BaseURL:      os.Getenv("AUTH_BASE_URL"),
			APIKey:       os.Getenv("AUTH_API_KEY"),
			APIKeyHeader: getEnv("AUTH_API_KEY_HEADER", "X-Api-Key"),
			Timeout:      getEnvDuration("AUTH_TIMEOUT", 5*time.Second),
		},
		Log: logger.Options{
			Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
			Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
			App:    getEnv("APP_NAME", "cattle-records"),
		},
		Collation: collation,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("port must be numeric: %q", c.Server.Port)
	}

	switch c.Storage.LayoutStore {
	case LayoutMemory:
	case LayoutBadger:
		if c.Storage.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required for badger layout store")
		}
	case LayoutRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for redis layout store")
		}
	case LayoutPostgres:
		if c.Storage.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres layout store")
		}
	default:
		return fmt.Errorf("invalid layout store: %s (must be memory, badger, redis, or postgres)", c.Storage.LayoutStore)
	}

	if c.Sources.RecordsURL != "" && c.Sources.SnapshotFile != "" {
		return fmt.Errorf("RECORDS_SOURCE_URL and SNAPSHOT_FILE are mutually exclusive")
	}
	if c.Auth.Enabled() && c.Auth.APIKey == "" {
		return fmt.Errorf("AUTH_API_KEY is required when AUTH_BASE_URL is set")
	}
	if c.Sources.MasterDataTTL < 0 {
		return fmt.Errorf("MASTERDATA_CACHE_TTL must not be negative")
	}
	return nil
}

// Addr para http.Server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func parseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("invalid COLLATION_LOCALE %q: %w", s, err)
	}
	return tag, nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration acepta "30s" o segundos enteros ("30").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
