package domain

import "time"

// Configuration is the on-disk parameter document read by the input parser.
type Configuration struct {
	Project     string          `yaml:"project,omitempty" json:"project,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters  InputParameters `yaml:"parameters" json:"parameters"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`             // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`           // json, console
	OutputFile string `mapstructure:"output_file" yaml:"output_file,omitempty"` // optional file output
}

// CacheConfig selects and configures the result cache used by the HTTP server.
type CacheConfig struct {
	Backend      string        `mapstructure:"backend" yaml:"backend,omitempty"` // memory, redis, none
	RedisAddress string        `mapstructure:"redis_address" yaml:"redis_address,omitempty"`
	RedisDB      int           `mapstructure:"redis_db" yaml:"redis_db,omitempty"`
	TTL          time.Duration `mapstructure:"ttl" yaml:"ttl,omitempty"` // zero means entries never expire
}

// ServerConfig defines runtime parameters for the HTTP API.
type ServerConfig struct {
	Address      string        `mapstructure:"address" yaml:"address,omitempty"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout,omitempty"`
}

// Settings holds application settings for the service and logging layers.
type Settings struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}
