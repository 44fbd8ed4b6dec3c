package config

import (
	"fmt"
	"time"
)

type QueueConfig struct {
	// When disabled, ledger events are only written to the log
	Enabled        bool          `mapstructure:"enabled"`
	QueueUser      string        `mapstructure:"queue_user"`
	QueuePassword  string        `mapstructure:"queue_password"`
	Url            string        `mapstructure:"url"`
	EventQueueName string        `mapstructure:"event_queue_name"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueUser == "" || cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue credentials")
	}

	if cfg.EventQueueName == "" {
		return fmt.Errorf("missing event queue name")
	}

	if cfg.PublishTimeout <= 0 {
		return fmt.Errorf("publish timeout must be positive")
	}
	return nil
}
