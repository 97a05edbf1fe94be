package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gdt-tools/gdtpack/pkg/logger"
)

const (
	// DefaultMetadataURL is the published release document for gdtpack.
	DefaultMetadataURL = "https://raw.githubusercontent.com/gdt-tools/releases/main/updates.json"

	// DefaultCheckDelay is how long after startup the single automatic
	// update check fires.
	DefaultCheckDelay = time.Second

	// DefaultHTTPTimeout bounds each metadata and download request.
	DefaultHTTPTimeout = 60 * time.Second
)

// Config holds all application configuration
type Config struct {
	Update  UpdateConfig  `mapstructure:"update" yaml:"update"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// UpdateConfig holds self-update configuration
type UpdateConfig struct {
	MetadataURL string `mapstructure:"metadata_url" yaml:"metadata_url"`
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	CheckDelay  string `mapstructure:"check_delay" yaml:"check_delay"`
	HTTPTimeout string `mapstructure:"http_timeout" yaml:"http_timeout"`
	AutoApply   bool   `mapstructure:"auto_apply" yaml:"auto_apply"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// Delay returns the parsed startup check delay, falling back to the default
// on a missing or malformed value.
func (u UpdateConfig) Delay() time.Duration {
	if d, err := time.ParseDuration(u.CheckDelay); err == nil && d >= 0 {
		return d
	}
	return DefaultCheckDelay
}

// Timeout returns the parsed HTTP client timeout, falling back to the
// default on a missing or malformed value.
func (u UpdateConfig) Timeout() time.Duration {
	if d, err := time.ParseDuration(u.HTTPTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultHTTPTimeout
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("update.metadata_url", DefaultMetadataURL)
	v.SetDefault("update.enabled", true)
	v.SetDefault("update.check_delay", DefaultCheckDelay.String())
	v.SetDefault("update.http_timeout", DefaultHTTPTimeout.String())
	v.SetDefault("update.auto_apply", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.compress", false)

	// Configuration file name and path
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gdtpack")
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("GDTPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Bind configuration to struct
	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	err = initLogger(&config.Logging)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// initLogger initializes the logger with the provided configuration
func initLogger(cfg *LoggingConfig) error {
	logConfig := logger.Config{
		Level:      cfg.Level,
		Format:     cfg.Format,
		File:       cfg.File,
		Module:     "main",
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}

	return logger.Init(logConfig)
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Update: UpdateConfig{
			MetadataURL: DefaultMetadataURL,
			Enabled:     true,
			CheckDelay:  DefaultCheckDelay.String(),
			HTTPTimeout: DefaultHTTPTimeout.String(),
			AutoApply:   false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSize:    10,
			MaxAge:     7,
			MaxBackups: 3,
		},
	}
}
