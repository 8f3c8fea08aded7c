// Package util provides common utilities for lanscan.
package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultProbeTimeout is the per-address echo timeout. Hosts slower than this
// are reported offline.
const DefaultProbeTimeout = 20 * time.Millisecond

// Config holds all application configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Probe settings
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	Privileged    bool          `mapstructure:"privileged"`

	// Interface limits local address discovery to one interface name.
	Interface string `mapstructure:"interface"`

	// Range settings
	DefaultMode  string `mapstructure:"default_mode"`
	StrictManual bool   `mapstructure:"strict_manual"`

	// Presentation
	LiveRows        int    `mapstructure:"live_rows"`
	ReportOutputDir string `mapstructure:"report_output_dir"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".lanscan")

	return &Config{
		DataDir:  dataDir,
		LogLevel: "info",
		LogFile:  filepath.Join(dataDir, "lanscan.log"),

		ProbeTimeout:  DefaultProbeTimeout,
		LookupTimeout: 2 * time.Second,
		Privileged:    os.Geteuid() == 0,

		DefaultMode: "auto",

		LiveRows:        20,
		ReportOutputDir: filepath.Join(dataDir, "reports"),
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches $HOME/.lanscan and the working directory for config.yaml.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(cfg.DataDir)
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("lanscan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults in viper
	viper.SetDefault("data_dir", cfg.DataDir)
	viper.SetDefault("log_level", cfg.LogLevel)
	viper.SetDefault("log_file", cfg.LogFile)
	viper.SetDefault("probe_timeout", cfg.ProbeTimeout)
	viper.SetDefault("lookup_timeout", cfg.LookupTimeout)
	viper.SetDefault("privileged", cfg.Privileged)
	viper.SetDefault("interface", cfg.Interface)
	viper.SetDefault("default_mode", cfg.DefaultMode)
	viper.SetDefault("strict_manual", cfg.StrictManual)
	viper.SetDefault("live_rows", cfg.LiveRows)
	viper.SetDefault("report_output_dir", cfg.ReportOutputDir)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal into config struct
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would make a scan meaningless.
func (c *Config) Validate() error {
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup_timeout must be positive, got %s", c.LookupTimeout)
	}
	if c.LiveRows <= 0 {
		c.LiveRows = 20
	}
	return nil
}

// EnsureDir ensures a directory exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
