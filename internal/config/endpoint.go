package config

import (
	"errors"
	"fmt"
	"net/url"
)

// EndpointConfig locates one external collaborator
type EndpointConfig struct {
	Url string `mapstructure:"url"`
	// Timeout in milliseconds, falls back to the clients default when 0
	Timeout int `mapstructure:"timeout"`
}

func (cfg *EndpointConfig) Validate(name string) error {
	if cfg.Url == "" {
		return fmt.Errorf("%s url cannot be empty", name)
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("%s timeout cannot be negative", name)
	}

	parsedURL, err := url.ParseRequestURI(cfg.Url)
	if err != nil {
		return fmt.Errorf("invalid %s url", name)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New(name + " url must start with http or https")
	}

	return nil
}
