package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

// Global configuration structure.
type Global struct {
	SourceURL      string  `mapstructure:"source_url" yaml:"source_url"`
	OutputDir      string  `mapstructure:"output_dir" yaml:"output_dir"`
	ReportFormat   string  `mapstructure:"report_format" yaml:"report_format"`
	HTTPTimeoutSec int     `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	ChartWidthIn   float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn  float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.nypdshootings/config.yaml, creating the directory
// if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".nypdshootings")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("NYPDSHOOTINGS")
	v.AutomaticEnv()

	v.SetDefault("source_url", dataset.DefaultSourceURL)
	v.SetDefault("output_dir", "report")
	v.SetDefault("report_format", "markdown")
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("chart_width_in", 10.0)
	v.SetDefault("chart_height_in", 6.0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".nypdshootings")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
