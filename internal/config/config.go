package config

// Config represents the complete embedsync configuration.
// It can be loaded from .embedsync.yml with environment variable overrides.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Sync  SyncConfig  `yaml:"sync" mapstructure:"sync"`
}

// PathsConfig defines which documents to sync and which paths to skip.
type PathsConfig struct {
	Docs   []string `yaml:"docs" mapstructure:"docs"`     // glob patterns for documents
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to skip
}

// SyncConfig defines runtime sync behavior.
type SyncConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // watch-mode debounce window
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Docs: []string{
				"**/*.md",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
			},
		},
		Sync: SyncConfig{
			DebounceMs: 500,
		},
	}
}
