package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the server. Values come from an optional
// YAML file pointed at by CONFIG_FILE, with environment variables taking
// precedence over both the file and the defaults.
type Config struct {
	AppName   string `yaml:"app_name"`
	JWTSecret string `yaml:"jwt_secret"`

	TokenTTL Duration `yaml:"token_ttl"`

	DatabaseDriver string `yaml:"database_driver"` // sqlite or postgres
	DatabaseDSN    string `yaml:"database_dsn"`

	Env                 string   `yaml:"env"`
	LogLevel            string   `yaml:"log_level"`
	LogFormat           string   `yaml:"log_format"`
	Port                int      `yaml:"port"`
	ShutdownGracePeriod Duration `yaml:"shutdown_grace_period"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// Duration wraps time.Duration so values like "24h" can be written directly
// in the config file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func defaultConfig() Config {
	return Config{
		AppName:             "restructuring-server",
		TokenTTL:            Duration{24 * time.Hour},
		DatabaseDriver:      "sqlite",
		DatabaseDSN:         "restructuring.db",
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: Duration{10 * time.Second},
		CORSAllowedOrigins:  []string{"http://localhost:5173"},
	}
}

// LoadConfig assembles the configuration. The JWT secret is validated later
// by the key loader; everything else is validated here.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.AppName = getEnvOrDefault("APP_NAME", cfg.AppName)
	cfg.JWTSecret = getEnvOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL.Duration = getEnvDurationOrDefault("TOKEN_TTL", cfg.TokenTTL.Duration)
	cfg.DatabaseDriver = getEnvOrDefault("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseDSN = getEnvOrDefault("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod.Duration = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod.Duration)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitAndTrim(origins)
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
