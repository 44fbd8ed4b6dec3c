package ledger

import (
	"fmt"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type ConsumerChain struct {
	ConsumerChainId string                    `json:"consumer_chain_id"`
	UnbondPeriod    time.Duration             `json:"unbond_period"`
	Website         string                    `json:"website"`
	Governance      string                    `json:"governance"`
	Treasury        string                    `json:"treasury"`
	PosAccountId    string                    `json:"pos_account_id"`
	BondingStakers  []string                  `json:"bonding_stakers"`
	Blacklist       []string                  `json:"blacklist"`
	Status          types.ConsumerChainStatus `json:"status"`
	RegisterFee     types.Amount              `json:"register_fee"`
}

type ConsumerChainRegisterParam struct {
	ConsumerChainId string        `json:"consumer_chain_id"`
	UnbondPeriod    time.Duration `json:"unbond_period"`
	Website         string        `json:"website"`
	Treasury        string        `json:"treasury"`
	PosAccountId    string        `json:"pos_account_id"`
}

// ConsumerChainUpdateParam is a partial update, nil fields are left unchanged.
type ConsumerChainUpdateParam struct {
	UnbondPeriod *time.Duration `json:"unbond_period,omitempty"`
	Website      *string        `json:"website,omitempty"`
	Treasury     *string        `json:"treasury,omitempty"`
	PosAccountId *string        `json:"pos_account_id,omitempty"`
	Governance   *string        `json:"governance,omitempty"`
}

// NewConsumerChain creates an active chain governed by the registering account.
func NewConsumerChain(
	param ConsumerChainRegisterParam, governance string, registerFee types.Amount,
) (*ConsumerChain, error) {
	if !utils.IsValidConsumerChainId(param.ConsumerChainId) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidConsumerChain, param.ConsumerChainId)
	}
	if param.UnbondPeriod < 0 {
		return nil, fmt.Errorf("%w: negative unbond period", ErrInvalidConsumerChain)
	}
	if err := utils.ValidateAccountId(param.Treasury); err != nil {
		return nil, fmt.Errorf("%w: treasury: %v", ErrInvalidConsumerChain, err)
	}
	if err := utils.ValidateAccountId(param.PosAccountId); err != nil {
		return nil, fmt.Errorf("%w: pos account: %v", ErrInvalidConsumerChain, err)
	}
	return &ConsumerChain{
		ConsumerChainId: param.ConsumerChainId,
		UnbondPeriod:    param.UnbondPeriod,
		Website:         param.Website,
		Governance:      governance,
		Treasury:        param.Treasury,
		PosAccountId:    param.PosAccountId,
		BondingStakers:  []string{},
		Blacklist:       []string{},
		Status:          types.Registered,
		RegisterFee:     registerFee,
	}, nil
}

func (c *ConsumerChain) AssertGovernance(caller string) error {
	if caller != c.Governance {
		return fmt.Errorf("%w: %s is not the governance of %s", ErrUnauthorized, caller, c.ConsumerChainId)
	}
	return nil
}

func (c *ConsumerChain) AssertPosAccount(caller string) error {
	if caller != c.PosAccountId {
		return fmt.Errorf("%w: %s is not the pos account of %s", ErrUnauthorized, caller, c.ConsumerChainId)
	}
	return nil
}

func (c *ConsumerChain) IsActive() bool {
	return c.Status == types.Registered
}

func (c *ConsumerChain) IsBlacklisted(stakerId string) bool {
	return utils.Contains(c.Blacklist, stakerId)
}

func (c *ConsumerChain) IsBonding(stakerId string) bool {
	return utils.Contains(c.BondingStakers, stakerId)
}

// CanBond checks the chain accepts a new bonding from the staker.
func (c *ConsumerChain) CanBond(stakerId string) error {
	if !utils.Contains(utils.QualifiedStatesToBond(), c.Status) {
		return ErrChainNotActive
	}
	if c.IsBlacklisted(stakerId) {
		return ErrBlacklisted
	}
	return nil
}

func (c *ConsumerChain) Bond(stakerId string) error {
	if err := c.CanBond(stakerId); err != nil {
		return err
	}
	c.BondingStakers = utils.InsertSorted(c.BondingStakers, stakerId)
	return nil
}

// Unbond is allowed in any status so stakers can leave a deregistered chain.
func (c *ConsumerChain) Unbond(stakerId string) {
	c.BondingStakers = utils.RemoveSorted(c.BondingStakers, stakerId)
}

// Blackout bars the staker from bonding again. Existing bondings are left to the staker.
func (c *ConsumerChain) Blackout(stakerId string) {
	c.Blacklist = utils.InsertSorted(c.Blacklist, stakerId)
}

func (c *ConsumerChain) Deregister() error {
	if !utils.Contains(utils.QualifiedStatesToDeregister(), c.Status) {
		return ErrChainNotActive
	}
	c.Status = types.Deregistered
	return nil
}

// UpdateInfo applies the non-nil fields and reports whether the unbond period changed.
func (c *ConsumerChain) UpdateInfo(param ConsumerChainUpdateParam) (bool, error) {
	if !utils.Contains(utils.QualifiedStatesToUpdate(), c.Status) {
		return false, ErrChainNotActive
	}
	if param.UnbondPeriod != nil && *param.UnbondPeriod < 0 {
		return false, fmt.Errorf("%w: negative unbond period", ErrInvalidConsumerChain)
	}
	for _, account := range []*string{param.Treasury, param.PosAccountId, param.Governance} {
		if account == nil {
			continue
		}
		if err := utils.ValidateAccountId(*account); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidConsumerChain, err)
		}
	}

	periodChanged := false
	if param.UnbondPeriod != nil && *param.UnbondPeriod != c.UnbondPeriod {
		c.UnbondPeriod = *param.UnbondPeriod
		periodChanged = true
	}
	if param.Website != nil {
		c.Website = *param.Website
	}
	if param.Treasury != nil {
		c.Treasury = *param.Treasury
	}
	if param.PosAccountId != nil {
		c.PosAccountId = *param.PosAccountId
	}
	if param.Governance != nil {
		c.Governance = *param.Governance
	}
	return periodChanged, nil
}

func (c *ConsumerChain) Clone() *ConsumerChain {
	cc := *c
	cc.BondingStakers = append([]string{}, c.BondingStakers...)
	cc.Blacklist = append([]string{}, c.Blacklist...)
	return &cc
}
