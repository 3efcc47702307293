package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GCALC_SERVER_ADDRESS.
const EnvPrefix = "GCALC"

// Setting defaults
const (
	DefaultServerAddress = ":8080"
	DefaultReadTimeout   = 15 * time.Second
	DefaultWriteTimeout  = 15 * time.Second
	DefaultCacheBackend  = "memory"
	DefaultRedisAddress  = "localhost:6379"
	DefaultCacheTTL      = 10 * time.Minute
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
)

// LoadSettings reads application settings from an optional YAML file and GCALC_*
// environment variables. An empty path means defaults plus environment only.
// Durations use time.ParseDuration syntax ("90s", "1h") and are decoded by viper.
func LoadSettings(path string) (*domain.Settings, error) {
	v := viper.New()
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("cache.backend", DefaultCacheBackend)
	v.SetDefault("cache.redis_address", DefaultRedisAddress)
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.output_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// ValidateSettings checks enumerations and durations in settings.
func ValidateSettings(s *domain.Settings) error {
	switch s.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache backend must be 'memory', 'redis' or 'none', got %q", s.Cache.Backend)
	}
	for name, value := range map[string]time.Duration{
		"cache.ttl":            s.Cache.TTL,
		"server.read_timeout":  s.Server.ReadTimeout,
		"server.write_timeout": s.Server.WriteTimeout,
	} {
		if value < 0 {
			return fmt.Errorf("%s cannot be negative, got %s", name, value)
		}
	}
	return nil
}
