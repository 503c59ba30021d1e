package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/nonflow/internal/thermo"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	AWS      AWSConfig
	Process  ProcessConfig
}

// DatabaseConfig holds database configuration. An empty URL disables run recording.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds trajectory cache configuration. An empty URL disables the cache.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables run export.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// ProcessConfig holds trajectory defaults
type ProcessConfig struct {
	DefaultFluid  string
	PropertyModel string
	SweepRatio    float64
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("DEFAULT_FLUID", thermo.DefaultFluid)
	v.SetDefault("PROPERTY_MODEL", thermo.ModelIdealGas)
	v.SetDefault("SWEEP_RATIO", 2.0)

	// Environment variables override .env file values
	v.AutomaticEnv()

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	// Try to read .env file for the current environment
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error - file may not exist

	for _, key := range []string{
		"DATABASE_URL", "REDIS_URL", "CACHE_TTL", "PORT", "ENVIRONMENT",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT",
		"ALLOWED_ORIGINS", "DEFAULT_FLUID", "PROPERTY_MODEL", "SWEEP_RATIO",
	} {
		_ = v.BindEnv(key)
	}

	var config Config
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Redis.URL = v.GetString("REDIS_URL")
	config.Redis.TTL = v.GetDuration("CACHE_TTL")
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitOrigins(v.GetString("ALLOWED_ORIGINS"))
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.Process.DefaultFluid = v.GetString("DEFAULT_FLUID")
	config.Process.PropertyModel = v.GetString("PROPERTY_MODEL")
	config.Process.SweepRatio = v.GetFloat64("SWEEP_RATIO")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", config.Server.Env).
		Str("fluid", config.Process.DefaultFluid).
		Str("model", config.Process.PropertyModel).
		Float64("sweepRatio", config.Process.SweepRatio).
		Bool("database", config.Database.URL != "").
		Bool("cache", config.Redis.URL != "").
		Bool("export", config.AWS.S3Bucket != "").
		Strs("allowedOrigins", config.Server.AllowedOrigins).
		Msg("Configuration loaded")

	return &config, nil
}

func (c *Config) validate() error {
	if _, err := thermo.NewProvider(c.Process.PropertyModel, c.Process.DefaultFluid); err != nil {
		return fmt.Errorf("invalid process defaults: %w", err)
	}
	r := c.Process.SweepRatio
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 || r == 1 {
		return fmt.Errorf("SWEEP_RATIO must be positive, finite and different from 1, got %g", r)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Redis.TTL)
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
