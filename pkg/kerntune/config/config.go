package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/pkg/kerntune/history"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// OutputConfig configures where and how the artifact is written.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
	File   string `mapstructure:"file"`
}

// HistoryConfig configures the run history store.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Config represents the application configuration.
type Config struct {
	DefaultProfile string        `mapstructure:"default_profile"`
	DisableIPv6    bool          `mapstructure:"disable_ipv6"`
	Output         OutputConfig  `mapstructure:"output"`
	History        HistoryConfig `mapstructure:"history"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

// TargetPath returns the full artifact install path.
func (c *Config) TargetPath() string {
	return filepath.Join(c.Output.Dir, c.Output.File)
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/kerntune/config.yaml
//   - $HOME/.config/kerntune/config.yaml
//
// Environment variables are prefixed with KERNTUNE_ (e.g.
// KERNTUNE_DEFAULT_PROFILE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "kerntune"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "kerntune"))

	v.SetEnvPrefix("KERNTUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.History.Path, "~") {
		cfg.History.Path = filepath.Join(homeDir, cfg.History.Path[1:])
	}

	return &cfg, nil
}

// setDefaults registers every default value on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_profile", DefaultProfile)
	v.SetDefault("disable_ipv6", false)

	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.file", DefaultOutputFile)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", history.DefaultPath())
	v.SetDefault("history.retention_days", DefaultRetentionDays)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use logging.DefaultLogPath
	v.SetDefault("logging.components", map[string]string{
		"detect": "info",
		"engine": "info",
		"live":   "warn",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "kerntune"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "kerntune"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// WriteDefault writes a commented default config file if none exists.
// Returns the config path, or an empty string when a file already existed.
func WriteDefault() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check config file: %w", err)
	}

	content := fmt.Sprintf(`# kerntune configuration

# Profile used when --profile is not given
default_profile: %s

# Emit the three IPv6 disable keys instead of the hardening set
disable_ipv6: false

output:
  # conf, table, json, or yaml
  format: %s
  dir: %s
  file: %s

history:
  enabled: true
  retention_days: %d

logging:
  level: info
  components:
    detect: info
    engine: info
    live: warn
`, DefaultProfile, DefaultFormat, DefaultOutputDir, DefaultOutputFile, DefaultRetentionDays)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
