package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Catalog sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
	SourceMySQL    = "mysql"
)

// Model kinds, mirrored from the classifier package
const (
	ModelForest   = "forest"
	ModelLogistic = "logistic"
	ModelRemote   = "remote"
)

type Config struct {
	// Server
	Port           int
	Env            string
	RequestTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Catalog
	CatalogSource   string
	CatalogPath     string
	PostgresURL     string
	RedisURL        string
	RedisCatalogKey string
	MySQLDSN        string

	// Model
	ModelKind     string
	ModelPath     string
	ModelEndpoint string
	ModelTimeout  time.Duration

	// Optional replacement for the built-in type chart
	TypeChartPath string
}

// Load loads configuration from environment variables.
// It returns an error if the selected catalog source or model kind is missing
// the settings it needs.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvInt("PORT", 8000),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		CatalogSource:   strings.ToLower(getEnv("CATALOG_SOURCE", SourceCSV)),
		CatalogPath:     getEnv("CATALOG_PATH", "pokemon.csv"),
		PostgresURL:     os.Getenv("POSTGRES_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisCatalogKey: getEnv("REDIS_CATALOG_KEY", "battlebrain:pokedex"),
		MySQLDSN:        os.Getenv("MYSQL_DSN"),

		ModelKind:     strings.ToLower(getEnv("MODEL_KIND", ModelForest)),
		ModelPath:     getEnv("MODEL_PATH", "pokemon_battle_model.json"),
		ModelEndpoint: os.Getenv("MODEL_ENDPOINT"),
		ModelTimeout:  getEnvDuration("MODEL_TIMEOUT", 5*time.Second),

		TypeChartPath: os.Getenv("TYPE_CHART_PATH"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case SourceCSV:
		if c.CatalogPath == "" {
			return fmt.Errorf("missing required environment variable: CATALOG_PATH")
		}
	case SourcePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("missing required environment variable: POSTGRES_URL")
		}
	case SourceRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("missing required environment variable: REDIS_URL")
		}
	case SourceMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("missing required environment variable: MYSQL_DSN")
		}
	default:
		return fmt.Errorf("unsupported CATALOG_SOURCE %q", c.CatalogSource)
	}

	switch c.ModelKind {
	case ModelForest, ModelLogistic:
		if c.ModelPath == "" {
			return fmt.Errorf("missing required environment variable: MODEL_PATH")
		}
	case ModelRemote:
		if c.ModelEndpoint == "" {
			return fmt.Errorf("missing required environment variable: MODEL_ENDPOINT")
		}
	default:
		return fmt.Errorf("unsupported MODEL_KIND %q", c.ModelKind)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// IsProduction reports whether ENV selects production logging
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
