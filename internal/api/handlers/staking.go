package handlers

import (
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type StakePayload struct {
	DepositPayload
	PoolId string `json:"pool_id"`
}

type DecreaseStakePayload struct {
	DepositPayload
	Amount      types.Amount `json:"amount" swaggertype:"string"`
	Beneficiary string       `json:"beneficiary,omitempty"`
}

type UnstakePayload struct {
	DepositPayload
	Beneficiary      string `json:"beneficiary,omitempty"`
	WithdrawByAnyone bool   `json:"withdraw_by_anyone"`
}

type PingPayload struct {
	DepositPayload
	// Defaults to the caller's selected pool
	PoolId string `json:"pool_id,omitempty"`
}

type WithdrawPayload struct {
	DepositPayload
	Owner                 string `json:"owner"`
	WithdrawalCertificate uint64 `json:"withdrawal_certificate"`
}

// RegisterAccount godoc
// @Summary Register the caller's account
// @Description Registration is required before staking.
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Success 200 {object} PublicResponse[services.AccountPublic] "Registered account"
// @Failure 409 {object} types.Error "Account already registered"
// @Router /v1/accounts [post]
func (h *Handler) RegisterAccount(request *http.Request) (*Result, *types.Error) {
	_, inv, err := parsePayload[DepositPayload](request)
	if err != nil {
		return nil, err
	}
	account, err := h.services.RegisterAccount(request.Context(), inv)
	if err != nil {
		return nil, err
	}
	return NewResult(account), nil
}

// Stake godoc
// @Summary Stake into a pool
// @Description Selects the pool and stakes the attached deposit. Only for stakers without shares.
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body StakePayload true "Stake request"
// @Success 200 {object} PublicResponse[services.StakingChangeResult] "Stake applied"
// @Success 202 "Rolled back, the deposit is refunded"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 409 {object} types.Error "Pool is locked by another operation"
// @Router /v1/staking/stake [post]
func (h *Handler) Stake(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[StakePayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Stake(request.Context(), inv, payload.PoolId)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// IncreaseStake godoc
// @Summary Add the attached deposit to the caller's stake
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body DepositPayload true "Deposit"
// @Success 200 {object} PublicResponse[services.StakingChangeResult] "Stake applied"
// @Success 202 "Rolled back, the deposit is refunded"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staking/increase [post]
func (h *Handler) IncreaseStake(request *http.Request) (*Result, *types.Error) {
	_, inv, err := parsePayload[DepositPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.IncreaseStake(request.Context(), inv)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// DecreaseStake godoc
// @Summary Move part of the caller's stake into a pending withdrawal
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body DecreaseStakePayload true "Decrease request"
// @Success 200 {object} PublicResponse[services.StakingChangeResult] "Withdrawal certificate issued"
// @Success 202 "Rolled back"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staking/decrease [post]
func (h *Handler) DecreaseStake(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[DecreaseStakePayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.DecreaseStake(request.Context(), inv, payload.Amount, payload.Beneficiary)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// Unstake godoc
// @Summary Unbond every consumer chain and withdraw the whole stake
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body UnstakePayload true "Unstake request"
// @Success 200 {object} PublicResponse[services.StakingChangeResult] "Withdrawal certificate issued"
// @Success 202 "Rolled back"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staking/unstake [post]
func (h *Handler) Unstake(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[UnstakePayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Unstake(request.Context(), inv, payload.Beneficiary, payload.WithdrawByAnyone)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// Ping godoc
// @Summary Refresh a pool's staked balance from the external pool
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body PingPayload false "Pool to refresh"
// @Success 200 {object} PublicResponse[services.PingResult] "Refreshed pool"
// @Success 202 "Rolled back"
// @Router /v1/staking/ping [post]
func (h *Handler) Ping(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[PingPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Ping(request.Context(), inv, payload.PoolId)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// Withdraw godoc
// @Summary Pay out an unlocked pending withdrawal
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body WithdrawPayload true "Withdrawal to pay"
// @Success 200 {object} PublicResponse[services.WithdrawResult] "Paid"
// @Success 202 "Rolled back, the withdrawal is kept"
// @Failure 403 {object} types.Error "Not withdrawable yet"
// @Router /v1/staking/withdraw [post]
func (h *Handler) Withdraw(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[WithdrawPayload](request)
	if err != nil {
		return nil, err
	}
	owner := payload.Owner
	if owner == "" {
		owner = inv.Caller
	}
	result, err := h.services.Withdraw(request.Context(), inv, owner, payload.WithdrawalCertificate)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// SubmitUnstakeBatch godoc
// @Summary Submit the pool's batched unstake to the external pool
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param pool_id path string true "Staking pool id"
// @Success 200 {object} PublicResponse[services.UnstakeBatchResult] "Submitted batch"
// @Success 202 "Rolled back"
// @Failure 400 {object} types.Error "Nothing to submit or a batch is still pending"
// @Router /v1/pools/{pool_id}/unstake-batches [post]
func (h *Handler) SubmitUnstakeBatch(request *http.Request) (*Result, *types.Error) {
	poolId, err := pathParam(request, "pool_id")
	if err != nil {
		return nil, err
	}
	_, inv, err := parsePayload[DepositPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.SubmitUnstakeBatch(request.Context(), inv, poolId)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// WithdrawUnstakeBatch godoc
// @Summary Withdraw an unlocked unstake batch from the external pool
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param pool_id path string true "Staking pool id"
// @Param batch_id path int true "Unstake batch id"
// @Success 200 {object} PublicResponse[services.UnstakeBatchResult] "Withdrawn batch"
// @Success 202 "Rolled back"
// @Failure 403 {object} types.Error "Batch not unlocked yet"
// @Router /v1/pools/{pool_id}/unstake-batches/{batch_id}/withdraw [post]
func (h *Handler) WithdrawUnstakeBatch(request *http.Request) (*Result, *types.Error) {
	poolId, err := pathParam(request, "pool_id")
	if err != nil {
		return nil, err
	}
	batchId, err := uintPathParam(request, "batch_id")
	if err != nil {
		return nil, err
	}
	_, inv, err := parsePayload[DepositPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.WithdrawUnstakeBatch(request.Context(), inv, poolId, batchId)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}
