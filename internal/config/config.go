package config

import (
	"fmt"
	"strings"

	apperrors "kore-landing-backend/internal/errors"

	"github.com/spf13/viper"
)

// Supported values of DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration. Leaving both DATABASE_URL and DB_HOST empty
	// selects the in-memory lead store.
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseDriver   string `mapstructure:"DB_DRIVER"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Tracing configuration
	OtelEnabled     bool    `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint    string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelServiceName string  `mapstructure:"OTEL_SERVICE_NAME"`
	OtelSampleRatio float64 `mapstructure:"OTEL_SAMPLER_RATIO"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set default values
	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// ALLOWED_ORIGINS arrives as a single comma separated string from the environment
	config.AllowedOrigins = splitList(config.AllowedOrigins)
	config.DatabaseDriver = strings.ToLower(strings.TrimSpace(config.DatabaseDriver))

	// Build database URL if not provided
	if config.DatabaseURL == "" && config.DatabaseHost != "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")

	// Database defaults; no host default so an unconfigured deployment runs in memory
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "kore_landing")
	v.SetDefault("DB_SSL_MODE", "disable")

	// CORS defaults
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5000", "http://localhost:5173"})

	// Tracing defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "kore-landing-backend")
	v.SetDefault("OTEL_SAMPLER_RATIO", 1.0)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validate(config *Config) error {
	switch config.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownDBDriver, config.DatabaseDriver)
	}

	if config.OtelSampleRatio < 0 || config.OtelSampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be between 0 and 1")
	}

	return nil
}

// DatabaseConfigured reports whether a durable lead store was requested
func (c *Config) DatabaseConfigured() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
