package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Master is the cluster master's base URL.
	Master string `mapstructure:"master"`
	// Scheduler is the framework name the status command expects to find
	// registered with the master.
	Scheduler string `mapstructure:"scheduler"`
	// Timeout bounds each request to a master or agent endpoint.
	Timeout time.Duration `mapstructure:"timeout"`
	// PoolWidth is the worker count shared by probes and tail passes.
	PoolWidth int  `mapstructure:"pool_width"`
	Verbose   bool `mapstructure:"verbose"`

	// Default values for the tail command
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for the tail command
type DefaultsConfig struct {
	Lines    int           `mapstructure:"lines"`
	Interval time.Duration `mapstructure:"interval"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Master:    "http://localhost:5050",
		Scheduler: "marathon",
		Timeout:   5 * time.Second,
		PoolWidth: 20,
		Defaults: DefaultsConfig{
			Lines:    10,
			Interval: 1 * time.Second,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.sandtail.yaml or ./.sandtail.yml
// 2. ~/.sandtail.yaml or ~/.sandtail.yml
// 3. $XDG_CONFIG_HOME/sandtail/config.yaml (or ~/.config/sandtail/config.yaml)
// 4. /etc/sandtail/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".sandtail.yaml", ".sandtail.yml", "sandtail.yaml", "sandtail.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "sandtail"))
	}
	searchPaths = append(searchPaths, "/etc/sandtail")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SANDTAIL_MASTER"); v != "" {
		cfg.Master = v
	}
	if v := os.Getenv("SANDTAIL_SCHEDULER"); v != "" {
		cfg.Scheduler = v
	}
	if v := os.Getenv("SANDTAIL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("SANDTAIL_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
}
