package config

import (
	"os"
	"strconv"

	"hierview/internal/errors"

	"github.com/BurntSushi/toml"
)

// Config represents the complete application configuration. It is built once at
// startup and passed to the components that need it.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Profiling ProfilingConfig `toml:"profiling"`
	LogLevel  string          `toml:"log_level"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `toml:"port"`
	GinMode string `toml:"gin_mode"`
	Title   string `toml:"title"`
}

// DataConfig holds the source spreadsheet and cache document locations
type DataConfig struct {
	SourceFile string `toml:"source_file"`
	SheetName  string `toml:"sheet_name"`
	CacheFile  string `toml:"cache_file"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `toml:"port"`
	Enabled bool   `toml:"enabled"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
			Title:   "Hierarchy",
		},
		Profiling: ProfilingConfig{
			Port: "6060",
		},
		LogLevel: "INFO",
	}
}

// Load builds the configuration from defaults, an optional TOML file at path, and
// environment variables, in increasing order of precedence. It does not validate.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(errors.NotFound("config file "+path), "failed to load configuration")
		}
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse config file %s", path))
		}
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.Title = getEnvOrDefault("PAGE_TITLE", config.Server.Title)

	// EXCEL_FILE is the older name for the source spreadsheet
	config.Data.SourceFile = getEnvOrDefault("EXCEL_FILE", config.Data.SourceFile)
	config.Data.SourceFile = getEnvOrDefault("SOURCE_FILE", config.Data.SourceFile)
	config.Data.SheetName = getEnvOrDefault("SHEET_NAME", config.Data.SheetName)
	config.Data.CacheFile = getEnvOrDefault("CACHE_FILE", config.Data.CacheFile)

	config.Profiling.Port = getEnvOrDefault("PPROF_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)

	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.Data.CacheFile == "" {
		return errors.ConfigInvalid("cache file is required (CACHE_FILE or --cache)")
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric: " + c.Server.Port)
	}
	return nil
}

// ValidateSource checks the settings needed to build the hierarchy
func (c *Config) ValidateSource() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Data.SourceFile == "" {
		return errors.ConfigInvalid("source spreadsheet is required (SOURCE_FILE or --source)")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
