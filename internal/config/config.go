package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string   `yaml:"port" env:"SERVER_PORT"`
		Mode         string   `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		CORSOrigins  []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		// Driver is "postgres" or "memory"; memory keeps everything in process.
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Media struct {
		Enabled            bool   `yaml:"enabled" env:"MEDIA_ENABLED"`
		BaseURL            string `yaml:"base_url" env:"MEDIA_BASE_URL"`
		CloudName          string `yaml:"cloud_name" env:"MEDIA_CLOUD_NAME"`
		APIKey             string `yaml:"api_key" env:"MEDIA_API_KEY"`
		APISecret          string `yaml:"api_secret" env:"MEDIA_API_SECRET"`
		CourseUploadPreset string `yaml:"course_upload_preset" env:"MEDIA_COURSE_UPLOAD_PRESET"`
		Timeout            string `yaml:"timeout" env:"MEDIA_TIMEOUT"`
	} `yaml:"media"`

	Cache struct {
		RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
		RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
		RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
		ReportTTL     string `yaml:"report_ttl" env:"CACHE_REPORT_TTL"`
	} `yaml:"cache"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "30s"
	config.Server.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "learnhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"
	config.Database.Seed = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Media.BaseURL = "https://api.cloudinary.com/v1_1"
	config.Media.CourseUploadPreset = "course_image"
	config.Media.Timeout = "15s"

	config.Cache.ReportTTL = "5m"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database conn_max_lifetime: %w", err)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	for name, value := range map[string]string{
		"server read_timeout":  config.Server.ReadTimeout,
		"server write_timeout": config.Server.WriteTimeout,
		"media timeout":        config.Media.Timeout,
		"cache report_ttl":     config.Cache.ReportTTL,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if config.Media.Enabled {
		if config.Media.CloudName == "" || config.Media.APIKey == "" || config.Media.APISecret == "" {
			return fmt.Errorf("media cloud_name, api_key and api_secret are required when media is enabled")
		}
		if config.Media.CourseUploadPreset == "" {
			return fmt.Errorf("media course_upload_preset is required when media is enabled")
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// UsesMemoryStore reports whether the in-process store is selected.
func (c *Config) UsesMemoryStore() bool {
	return strings.EqualFold(c.Database.Driver, "memory")
}
