package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

const DefaultUnlockDelayEpochs = 4

// LedgerConfig holds the economic parameters of the ledger.
// Amounts are decimal strings in the smallest token unit.
type LedgerConfig struct {
	// Account the ledger stakes under in the external pools
	ContractAccountId string        `mapstructure:"contract-account-id"`
	RegisterFee       string        `mapstructure:"register-fee"`
	SlashGuarantee    string        `mapstructure:"slash-guarantee"`
	ActionDeposit     string        `mapstructure:"action-deposit"`
	UnlockDelayEpochs uint64        `mapstructure:"unlock-delay-epochs"`
	EpochDuration     time.Duration `mapstructure:"epoch-duration"`
	// RFC3339 timestamp of epoch 0
	GenesisTime string `mapstructure:"genesis-time"`

	genesisTime    time.Time
	registerFee    types.Amount
	slashGuarantee types.Amount
	actionDeposit  types.Amount
}

func (cfg *LedgerConfig) Validate() error {
	if err := utils.ValidateAccountId(cfg.ContractAccountId); err != nil {
		return fmt.Errorf("invalid contract-account-id: %w", err)
	}

	var err error
	if cfg.registerFee, err = types.AmountFromDecimal(cfg.RegisterFee); err != nil {
		return fmt.Errorf("invalid register-fee: %w", err)
	}
	if cfg.slashGuarantee, err = types.AmountFromDecimal(cfg.SlashGuarantee); err != nil {
		return fmt.Errorf("invalid slash-guarantee: %w", err)
	}
	if cfg.actionDeposit, err = types.AmountFromDecimal(cfg.ActionDeposit); err != nil {
		return fmt.Errorf("invalid action-deposit: %w", err)
	}

	if cfg.UnlockDelayEpochs == 0 {
		cfg.UnlockDelayEpochs = DefaultUnlockDelayEpochs
	}

	if cfg.EpochDuration <= 0 {
		return errors.New("epoch-duration must be positive")
	}

	if cfg.GenesisTime == "" {
		return errors.New("missing genesis-time")
	}
	if cfg.genesisTime, err = time.Parse(time.RFC3339, cfg.GenesisTime); err != nil {
		return fmt.Errorf("invalid genesis-time: %w", err)
	}

	return nil
}

func (cfg *LedgerConfig) GetGenesisTime() time.Time {
	return cfg.genesisTime
}

func (cfg *LedgerConfig) GetRegisterFee() types.Amount {
	return cfg.registerFee
}

func (cfg *LedgerConfig) GetSlashGuarantee() types.Amount {
	return cfg.slashGuarantee
}

func (cfg *LedgerConfig) GetActionDeposit() types.Amount {
	return cfg.actionDeposit
}
