package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration for rootDir with the following priority
// (highest to lowest):
//  1. Environment variables (EMBEDSYNC_*)
//  2. Config file (.embedsync.yml in rootDir)
//  3. Default values
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(".embedsync")
	v.SetConfigType("yaml")
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix("EMBEDSYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("sync.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults seeds viper with the Default() configuration.
func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("paths.docs", defaults.Paths.Docs)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("sync.debounce_ms", defaults.Sync.DebounceMs)
}
