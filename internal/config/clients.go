package config

import (
	"errors"
)

type ClientsConfig struct {
	// Default request timeout in milliseconds
	Timeout int `mapstructure:"timeout"`
	// Attempts for idempotent read-only queries, including the first one
	MaxRetries       uint           `mapstructure:"max-retries"`
	StakingPool      EndpointConfig `mapstructure:"staking-pool"`
	Whitelist        EndpointConfig `mapstructure:"whitelist"`
	ConsumerChainPos EndpointConfig `mapstructure:"consumer-chain-pos"`
	Bank             EndpointConfig `mapstructure:"bank"`
}

func (cfg *ClientsConfig) Validate() error {
	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	if cfg.MaxRetries == 0 {
		return errors.New("max-retries cannot be 0")
	}

	if err := cfg.StakingPool.Validate("staking-pool"); err != nil {
		return err
	}

	if err := cfg.Whitelist.Validate("whitelist"); err != nil {
		return err
	}

	if err := cfg.ConsumerChainPos.Validate("consumer-chain-pos"); err != nil {
		return err
	}

	if err := cfg.Bank.Validate("bank"); err != nil {
		return err
	}

	return nil
}
