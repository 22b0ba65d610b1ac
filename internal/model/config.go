package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StoreConfig holds the location of the catalog database.
type StoreConfig struct {
	// Path is the SQLite file the catalog snapshot is kept in.
	Path string `mapstructure:"path" yaml:"path"`
}

// IDConfig selects the identifier format for new entities.
type IDConfig struct {
	// Format is "uuid" or "cuid".
	Format string `mapstructure:"format" yaml:"format"`
}

// VisibilityConfig holds schedule evaluation settings.
type VisibilityConfig struct {
	// Timezone is an IANA zone name used to read weekdays and hours.
	Timezone         string `mapstructure:"timezone" yaml:"timezone"`
	DefaultStartHour int    `mapstructure:"default_start_hour" yaml:"default_start_hour"`
	DefaultEndHour   int    `mapstructure:"default_end_hour" yaml:"default_end_hour"`
}

// LifecycleConfig holds archive settings.
type LifecycleConfig struct {
	// RetentionDays is how long archived entities are kept before
	// "archive purge" deletes them. Zero keeps them forever.
	RetentionDays int `mapstructure:"retention_days" yaml:"retention_days"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	IDs        IDConfig         `mapstructure:"ids" yaml:"ids"`
	Visibility VisibilityConfig `mapstructure:"visibility" yaml:"visibility"`
	Lifecycle  LifecycleConfig  `mapstructure:"lifecycle" yaml:"lifecycle"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/menucatalog/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "menucatalog", "config.yaml")
}

// DefaultStorePath returns the default catalog database path, next to the
// default configuration file.
func DefaultStorePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "catalog.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Store: StoreConfig{Path: DefaultStorePath()},
		IDs:   IDConfig{Format: "uuid"},
		Visibility: VisibilityConfig{
			Timezone:         "Local",
			DefaultStartHour: 9,
			DefaultEndHour:   17,
		},
		Lifecycle: LifecycleConfig{RetentionDays: 30},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed with MENUCATALOG_ override file values
// (MENUCATALOG_STORE_PATH, MENUCATALOG_LOG_LEVEL, ...).
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("menucatalog")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("ids.format", def.IDs.Format)
	v.SetDefault("visibility.timezone", def.Visibility.Timezone)
	v.SetDefault("visibility.default_start_hour", def.Visibility.DefaultStartHour)
	v.SetDefault("visibility.default_end_hour", def.Visibility.DefaultEndHour)
	v.SetDefault("lifecycle.retention_days", def.Lifecycle.RetentionDays)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.IDs.Format {
	case "uuid", "cuid":
	default:
		return nil, fmt.Errorf("parsing config %s: unknown ids.format %q", path, cfg.IDs.Format)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store.path", cfg.Store.Path)
	v.Set("ids.format", cfg.IDs.Format)
	v.Set("visibility.timezone", cfg.Visibility.Timezone)
	v.Set("visibility.default_start_hour", cfg.Visibility.DefaultStartHour)
	v.Set("visibility.default_end_hour", cfg.Visibility.DefaultEndHour)
	v.Set("lifecycle.retention_days", cfg.Lifecycle.RetentionDays)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.development", cfg.Log.Development)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
