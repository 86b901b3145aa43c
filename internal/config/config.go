// Package config provides configuration management for breaktime.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/logger"
)

// Config holds all configuration for the breaktime daemon.
type Config struct {
	IdleDetection           bool               `mapstructure:"idle_detection"`
	IdleThresholdSeconds    int                `mapstructure:"idle_threshold_seconds"`
	NotificationLeadSeconds int                `mapstructure:"notification_lead_seconds"`
	AllowSkip               bool               `mapstructure:"allow_skip"`
	AllowPostpone           bool               `mapstructure:"allow_postpone"`
	PostponeMinutes         int                `mapstructure:"postpone_minutes"`
	StrictMode              bool               `mapstructure:"strict_mode"`
	ShortBreak              BreakConfig        `mapstructure:"short_break"`
	LongBreak               BreakConfig        `mapstructure:"long_break"`
	Notifications           NotificationConfig `mapstructure:"notifications"`
}

// BreakConfig holds the schedule of one break kind.
type BreakConfig struct {
	IntervalMinutes int  `mapstructure:"interval_minutes"`
	DurationSeconds int  `mapstructure:"duration_seconds"`
	Enabled         bool `mapstructure:"enabled"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
}

// Timeout returns the per-notification delivery timeout.
func (c NotificationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		IdleDetection:           true,
		IdleThresholdSeconds:    300,
		NotificationLeadSeconds: 10,
		AllowSkip:               true,
		AllowPostpone:           true,
		PostponeMinutes:         5,
		StrictMode:              false,
		ShortBreak: BreakConfig{
			IntervalMinutes: 20,
			DurationSeconds: 20,
			Enabled:         true,
		},
		LongBreak: BreakConfig{
			IntervalMinutes: 60,
			DurationSeconds: 300,
			Enabled:         true,
		},
		Notifications: NotificationConfig{
			Enabled:        true,
			TimeoutSeconds: 5,
		},
	}
}

// ToTimerConfig converts the file representation into the timer's configuration.
func (c *Config) ToTimerConfig() domain.TimerConfig {
	return domain.TimerConfig{
		Short:            c.ShortBreak.toDomain(),
		Long:             c.LongBreak.toDomain(),
		IdleDetection:    c.IdleDetection,
		IdleThreshold:    time.Duration(c.IdleThresholdSeconds) * time.Second,
		NotificationLead: time.Duration(c.NotificationLeadSeconds) * time.Second,
		AllowSkip:        c.AllowSkip,
		AllowPostpone:    c.AllowPostpone,
		PostponeDuration: time.Duration(c.PostponeMinutes) * time.Minute,
		StrictMode:       c.StrictMode,
	}
}

func (b BreakConfig) toDomain() domain.BreakConfig {
	return domain.BreakConfig{
		Interval: time.Duration(b.IntervalMinutes) * time.Minute,
		Duration: time.Duration(b.DurationSeconds) * time.Second,
		Enabled:  b.Enabled,
	}
}

// Validate checks the configuration for values the timer cannot run with.
func (c *Config) Validate() error {
	err := c.ToTimerConfig().Validate()
	if c.Notifications.TimeoutSeconds <= 0 {
		err = errors.Join(err, fmt.Errorf("notification timeout must be positive, got %ds", c.Notifications.TimeoutSeconds))
	}
	return err
}

// values flattens the configuration into viper keys.
func (c *Config) values() map[string]any {
	return map[string]any{
		"idle_detection":                c.IdleDetection,
		"idle_threshold_seconds":        c.IdleThresholdSeconds,
		"notification_lead_seconds":     c.NotificationLeadSeconds,
		"allow_skip":                    c.AllowSkip,
		"allow_postpone":                c.AllowPostpone,
		"postpone_minutes":              c.PostponeMinutes,
		"strict_mode":                   c.StrictMode,
		"short_break.interval_minutes":  c.ShortBreak.IntervalMinutes,
		"short_break.duration_seconds":  c.ShortBreak.DurationSeconds,
		"short_break.enabled":           c.ShortBreak.Enabled,
		"long_break.interval_minutes":   c.LongBreak.IntervalMinutes,
		"long_break.duration_seconds":   c.LongBreak.DurationSeconds,
		"long_break.enabled":            c.LongBreak.Enabled,
		"notifications.enabled":         c.Notifications.Enabled,
		"notifications.timeout_seconds": c.Notifications.TimeoutSeconds,
	}
}

// Get returns the value stored under a flat key such as "short_break.enabled".
func (c *Config) Get(key string) (any, bool) {
	v, ok := c.values()[key]
	return v, ok
}

// Keys returns every settable configuration key in sorted order.
func Keys() []string {
	values := DefaultConfig().values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Manager reads, writes and watches one configuration file.
type Manager struct {
	v    *viper.Viper
	path string
}

// NewManager creates a manager for path. An empty path selects DefaultPath.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	for key, value := range DefaultConfig().values() {
		v.SetDefault(key, value)
	}
	return &Manager{v: v, path: path}, nil
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the configuration file, creating it with defaults when missing.
func (m *Manager) Load() (*Config, error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		if err := m.Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(m.v)
}

// Save writes cfg to the configuration file.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// A separate instance keeps explicit values out of m.v, where they would
	// shadow later edits picked up by Watch.
	out := viper.New()
	out.SetConfigType("toml")
	for key, value := range cfg.values() {
		out.Set(key, value)
	}
	if err := out.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set parses value for key, validates the result and saves it.
func (m *Manager) Set(key, value string) (*Config, error) {
	current, ok := DefaultConfig().values()[key]
	if !ok {
		return nil, unknownKeyError(key)
	}

	cfg, err := m.Load()
	if err != nil {
		return nil, err
	}

	var parsed any
	switch current.(type) {
	case bool:
		parsed, err = strconv.ParseBool(value)
	default:
		parsed, err = strconv.Atoi(value)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}

	tmp := viper.New()
	for k, v := range cfg.values() {
		tmp.Set(k, v)
	}
	tmp.Set(key, parsed)
	updated, err := decode(tmp)
	if err != nil {
		return nil, err
	}
	if err := m.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Watch calls onChange with every valid configuration written to the file
// after Watch is called. Invalid edits are logged and ignored.
func (m *Manager) Watch(ctx context.Context, onChange func(*Config)) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(m.v)
		if err != nil {
			logger.Warn(ctx, "Ignoring invalid config change", "path", e.Name, "err", err)
			return
		}
		logger.Info(ctx, "Config reloaded", "path", e.Name)
		onChange(cfg)
	})
	m.v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Load is a convenience wrapper around NewManager(path).Load().
func Load(path string) (*Config, error) {
	m, err := NewManager(path)
	if err != nil {
		return nil, err
	}
	return m.Load()
}

// DefaultPath returns the path to the config file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "breaktime", "config.toml"), nil
}

func unknownKeyError(key string) error {
	matches := fuzzy.Find(key, Keys())
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", domain.ErrUnknownConfigKey, key)
	}
	return fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnknownConfigKey, key, matches[0].Str)
}
