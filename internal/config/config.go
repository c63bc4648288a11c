// Package config collects the service's runtime knobs from environment
// variables (STOCKVIEW_* prefix) and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr string `mapstructure:"addr"`

	// DatasetPath overrides the embedded product collection.
	DatasetPath string `mapstructure:"dataset_path"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsToken   string `mapstructure:"metrics_token"`

	EditLimitPerMin  int `mapstructure:"edit_limit_per_min"`
	EditLimitWindowS int `mapstructure:"edit_limit_window_s"`
}

// Load reads configuration with defaults, then the file at path (when
// non-empty), then the environment. Environment wins.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("dataset_path", "")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_token", "")
	v.SetDefault("edit_limit_per_min", 30)
	v.SetDefault("edit_limit_window_s", 60)

	v.SetEnvPrefix("stockview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("addr must not be empty")
	}
	if cfg.EditLimitPerMin <= 0 || cfg.EditLimitWindowS <= 0 {
		return Config{}, fmt.Errorf("edit rate limit values must be positive")
	}

	return cfg, nil
}
