package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPattern indicates a blank glob pattern.
	ErrEmptyPattern = errors.New("empty glob pattern")

	// ErrInvalidDebounce indicates a negative debounce window.
	ErrInvalidDebounce = errors.New("invalid debounce window")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	for _, p := range cfg.Paths.Docs {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w in paths.docs", ErrEmptyPattern)
		}
	}
	for _, p := range cfg.Paths.Ignore {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w in paths.ignore", ErrEmptyPattern)
		}
	}
	if cfg.Sync.DebounceMs < 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidDebounce, cfg.Sync.DebounceMs)
	}
	return nil
}
