package config

import (
	"fmt"
	"net"
	"strings"
)

// MetricsConfig is where the prometheus collectors are served
type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Path defaults to /metrics
	Path string `mapstructure:"path"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return fmt.Errorf("metrics server port must be between 1024 and 65535 (inclusive)")
	}

	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("invalid metrics server host: %v", cfg.Host)
	}

	if cfg.Path != "" && !strings.HasPrefix(cfg.Path, "/") {
		return fmt.Errorf("metrics path %q must start with /", cfg.Path)
	}
	return nil
}

func (cfg *MetricsConfig) GetAddress() string {
	return net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
}

func (cfg *MetricsConfig) GetPath() string {
	if cfg.Path == "" {
		return "/metrics"
	}
	return cfg.Path
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Host: "0.0.0.0",
		Port: 2112,
		Path: "/metrics",
	}
}
