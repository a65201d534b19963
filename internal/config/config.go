package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"pointconfig/domain/geometry"
	"pointconfig/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Geometry GeometryConfig `yaml:"geometry" validate:"required"`
	Search   SearchConfig   `yaml:"search" validate:"required"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Storage  StorageConfig  `yaml:"storage"`
	LogLevel string         `yaml:"log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

// GeometryConfig selects the affine space the scorer works in
type GeometryConfig struct {
	Prime     int `yaml:"prime" validate:"required,gt=2"`
	Dimension int `yaml:"dimension" validate:"required,eq=3"`
}

// SearchConfig holds the search loop settings
type SearchConfig struct {
	BatchSize  int     `yaml:"batch_size" validate:"required,gt=0"`
	Rounds     int     `yaml:"rounds" validate:"required,gt=0"`
	Percentile float64 `yaml:"percentile" validate:"gte=0,lt=100"`
	TopK       int     `yaml:"top_k" validate:"required,gt=0"`
	Workers    int     `yaml:"workers" validate:"required,gt=0"`
	Density    float64 `yaml:"density" validate:"gte=0,lte=1"`
	Seed       int64   `yaml:"seed"`
}

// DatabaseConfig holds database connection settings; an empty URL disables Postgres
type DatabaseConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
}

// StorageConfig holds file system paths
type StorageConfig struct {
	ExamplesPath string `yaml:"examples_path"`
}

// Load reads configuration from environment variables, overlays the YAML file
// named by POINTCONFIG_CONFIG when set, and validates the result
func Load() (*Config, error) {
	config := &Config{
		Geometry: *loadGeometryConfig(),
		Search:   *loadSearchConfig(),
		Database: DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
		Server:   ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Storage:  StorageConfig{ExamplesPath: getEnvOrDefault("EXAMPLES_PATH", "")},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if path := os.Getenv("POINTCONFIG_CONFIG"); path != "" {
		if err := overlayFile(config, path); err != nil {
			return nil, errors.Wrapf(err, "failed to read configuration file %s", path)
		}
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when nothing is set in the environment
func Default() *Config {
	return &Config{
		Geometry: GeometryConfig{Prime: 11, Dimension: 3},
		Search: SearchConfig{
			BatchSize:  1000,
			Rounds:     10,
			Percentile: 90,
			TopK:       20,
			Workers:    runtime.NumCPU(),
			Seed:       42,
		},
		Server:   ServerConfig{Port: "8080"},
		LogLevel: "INFO",
	}
}

func loadGeometryConfig() *GeometryConfig {
	defaults := Default().Geometry
	return &GeometryConfig{
		Prime:     getEnvIntOrDefault("PRIME", defaults.Prime),
		Dimension: getEnvIntOrDefault("DIMENSION", defaults.Dimension),
	}
}

func loadSearchConfig() *SearchConfig {
	defaults := Default().Search
	return &SearchConfig{
		BatchSize:  getEnvIntOrDefault("BATCH_SIZE", defaults.BatchSize),
		Rounds:     getEnvIntOrDefault("ROUNDS", defaults.Rounds),
		Percentile: getEnvFloatOrDefault("PERCENTILE", defaults.Percentile),
		TopK:       getEnvIntOrDefault("TOP_K", defaults.TopK),
		Workers:    getEnvIntOrDefault("WORKERS", defaults.Workers),
		Density:    getEnvFloatOrDefault("DENSITY", defaults.Density),
		Seed:       getEnvInt64OrDefault("SEED", defaults.Seed),
	}
}

func overlayFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and that the prime really is prime
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid configuration")
	}
	if err := geometry.CheckPrimeDim(config.Geometry.Prime, config.Geometry.Dimension); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
