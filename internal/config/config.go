// Package config provides configuration types and helpers for parley.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format    string          `mapstructure:"format"`
	Verbose   bool            `mapstructure:"verbose"`
	Log       LogConfig       `mapstructure:"log"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Redaction RedactionConfig `mapstructure:"redaction"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// LogConfig controls diagnostic logging to stderr.
type LogConfig struct {
	Level    string `mapstructure:"level"`    // debug, info, warn, error
	Encoding string `mapstructure:"encoding"` // console or json
}

// PipelineConfig tunes normalization.
type PipelineConfig struct {
	// TechnicalLimit is the rune length above which code-like message
	// bodies are dropped.
	TechnicalLimit int `mapstructure:"technical_limit"`

	// MaxChars clips the emitted transcript; 0 disables clipping.
	MaxChars int `mapstructure:"max_chars"`
}

// RedactionConfig holds configuration for personal data redaction.
type RedactionConfig struct {
	// Enabled controls whether redaction is active
	Enabled bool `mapstructure:"enabled"`

	// Patterns specifies which redaction patterns to use
	// Available: email, phone, ipv4, credit_card, api_key, jwt
	Patterns []string `mapstructure:"patterns"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce  string `mapstructure:"debounce"`   // e.g. "250ms"
	DedupeTTL string `mapstructure:"dedupe_ttl"` // e.g. "10m", "1d"
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("pipeline.technical_limit", 1000)
	v.SetDefault("pipeline.max_chars", 0)
	v.SetDefault("redaction.enabled", false)
	v.SetDefault("redaction.patterns", []string{"jwt", "api_key", "email", "credit_card", "phone", "ipv4"})
	v.SetDefault("watch.debounce", "250ms")
	v.SetDefault("watch.dedupe_ttl", "10m")
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Pipeline.TechnicalLimit < 0 {
		return nil, fmt.Errorf("pipeline.technical_limit must not be negative: %d", cfg.Pipeline.TechnicalLimit)
	}
	if cfg.Pipeline.MaxChars < 0 {
		return nil, fmt.Errorf("pipeline.max_chars must not be negative: %d", cfg.Pipeline.MaxChars)
	}
	return &cfg, nil
}

// DebounceInterval returns the parsed watch debounce, or fallback when unset.
func (w WatchConfig) DebounceInterval(fallback time.Duration) (time.Duration, error) {
	return durationOr(w.Debounce, fallback)
}

// DedupeWindow returns the parsed dedupe TTL, or fallback when unset.
func (w WatchConfig) DedupeWindow(fallback time.Duration) (time.Duration, error) {
	return durationOr(w.DedupeTTL, fallback)
}

func durationOr(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseDuration(s)
}
