package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names for the durable append logs.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Resolvers probed in addition to the configured target host.
var extraTargets = []string{"8.8.8.8", "1.1.1.1"}

// Config holds all configuration for the network monitor.
type Config struct {
	TargetHost     string        `mapstructure:"target_host"`
	SampleCount    int           `mapstructure:"sample_count"`
	CycleInterval  time.Duration `mapstructure:"cycle_interval"`
	ErrorBackoff   time.Duration `mapstructure:"error_backoff_interval"`
	StorageDir     string        `mapstructure:"storage_directory"`
	StorageBackend string        `mapstructure:"storage_backend"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	SpeedTimeout   time.Duration `mapstructure:"speed_timeout"`
	ScanTimeout    time.Duration `mapstructure:"scan_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	MetricsAddr    string        `mapstructure:"metrics_addr"`
	ChartEvery     int           `mapstructure:"chart_every"`
}

// Load reads configuration from an optional config file, NETMON_* environment
// variables and built-in defaults, in that order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NETMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("netmon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target_host", "192.168.1.1")
	v.SetDefault("sample_count", 4)
	v.SetDefault("cycle_interval", "300s")
	v.SetDefault("error_backoff_interval", "60s")
	v.SetDefault("storage_directory", "network_logs")
	v.SetDefault("storage_backend", BackendCSV)
	v.SetDefault("probe_timeout", "1s")
	v.SetDefault("speed_timeout", "120s")
	v.SetDefault("scan_timeout", "15s")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("chart_every", 12)
}

// Targets returns the full reachability target set: the configured host plus
// the two public resolvers that are always probed.
func (c *Config) Targets() []string {
	targets := []string{c.TargetHost}
	for _, t := range extraTargets {
		if t != c.TargetHost {
			targets = append(targets, t)
		}
	}
	return targets
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TargetHost == "" {
		return fmt.Errorf("target host cannot be empty")
	}
	if c.SampleCount <= 0 {
		return fmt.Errorf("sample count must be positive")
	}
	if c.CycleInterval <= 0 {
		return fmt.Errorf("cycle interval must be positive")
	}
	if c.ErrorBackoff <= 0 {
		return fmt.Errorf("error backoff interval must be positive")
	}
	if c.StorageDir == "" {
		return fmt.Errorf("storage directory cannot be empty")
	}
	if c.StorageBackend != BackendCSV && c.StorageBackend != BackendSQLite {
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.ProbeTimeout <= 0 || c.SpeedTimeout <= 0 || c.ScanTimeout <= 0 {
		return fmt.Errorf("probe timeouts must be positive")
	}
	if c.ChartEvery < 0 {
		return fmt.Errorf("chart interval cannot be negative")
	}
	return nil
}
