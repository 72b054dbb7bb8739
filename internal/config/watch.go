package config

import "time"

// WatchConfig holds settings for re-running selection when a track manifest changes.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before reloading.
	// Default: 500ms
	Debounce time.Duration
}

// DefaultWatchConfig returns the default watch configuration
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce: 500 * time.Millisecond,
	}
}

// LoadWatchConfig reads watch settings, falling back to defaults
func LoadWatchConfig(loader *Loader) *WatchConfig {
	cfg := DefaultWatchConfig()
	if loader == nil {
		return cfg
	}
	if d := loader.Duration("watch.debounce", cfg.Debounce); d > 0 {
		cfg.Debounce = d
	}
	return cfg
}
