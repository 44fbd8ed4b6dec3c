package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type BondPayload struct {
	DepositPayload
	ConsumerChainId string `json:"consumer_chain_id"`
	Key             string `json:"key"`
}

type UnbondPayload struct {
	DepositPayload
	ConsumerChainId string `json:"consumer_chain_id"`
}

type RegisterConsumerChainPayload struct {
	DepositPayload
	ConsumerChainId string `json:"consumer_chain_id"`
	// Go duration, e.g. "504h"
	UnbondPeriod string `json:"unbond_period"`
	Website      string `json:"website"`
	Treasury     string `json:"treasury"`
	PosAccountId string `json:"pos_account_id"`
}

type UpdateConsumerChainPayload struct {
	DepositPayload
	UnbondPeriod *string `json:"unbond_period,omitempty"`
	Website      *string `json:"website,omitempty"`
	Treasury     *string `json:"treasury,omitempty"`
	PosAccountId *string `json:"pos_account_id,omitempty"`
	Governance   *string `json:"governance,omitempty"`
}

type BlackoutPayload struct {
	DepositPayload
	StakerId string `json:"staker_id"`
}

type SlashRequestPayload struct {
	DepositPayload
	SlashItems   []ledger.SlashItem `json:"slash_items"`
	EvidenceHash string             `json:"evidence_sha256_hash"`
}

type ResolveSlashPayload struct {
	DepositPayload
	Approve bool `json:"approve"`
}

func parseUnbondPeriod(value string) (time.Duration, *types.Error) {
	period, err := time.ParseDuration(value)
	if err != nil || period < 0 {
		return 0, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, fmt.Sprintf("invalid unbond period %q", value),
		)
	}
	return period, nil
}

// Bond godoc
// @Summary Bond the caller's stake to a consumer chain
// @Description The bonding is recorded once the chain's position module accepted the key.
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body BondPayload true "Bond request"
// @Success 200 {object} PublicResponse[services.BondingResult] "Bonded"
// @Success 202 "Refused by the consumer chain"
// @Failure 403 {object} types.Error "Blacklisted, chain not active or unbonding in progress"
// @Router /v1/restaking/bond [post]
func (h *Handler) Bond(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[BondPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Bond(request.Context(), inv, payload.ConsumerChainId, payload.Key)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// ChangeKey godoc
// @Summary Rotate the key used on a bonded consumer chain
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body BondPayload true "New key"
// @Success 200 {object} PublicResponse[services.BondingResult] "Key changed"
// @Success 202 "Refused by the consumer chain"
// @Router /v1/restaking/change-key [post]
func (h *Handler) ChangeKey(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[BondPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.ChangeKey(request.Context(), inv, payload.ConsumerChainId, payload.Key)
	if err != nil {
		return nil, err
	}
	return NewWorkflowResult(result), nil
}

// Unbond godoc
// @Summary Leave a consumer chain
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body UnbondPayload true "Chain to leave"
// @Success 200 {object} PublicResponse[services.BondingResult] "Unbonded"
// @Failure 400 {object} types.Error "Not bonded"
// @Router /v1/restaking/unbond [post]
func (h *Handler) Unbond(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[UnbondPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Unbond(request.Context(), inv, payload.ConsumerChainId)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// RegisterConsumerChain godoc
// @Summary Register a consumer chain governed by the caller
// @Description The attached deposit must equal the register fee.
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param payload body RegisterConsumerChainPayload true "Consumer chain"
// @Success 200 {object} PublicResponse[services.ConsumerChainResult] "Registered chain"
// @Failure 409 {object} types.Error "Chain already registered"
// @Router /v1/consumer-chains [post]
func (h *Handler) RegisterConsumerChain(request *http.Request) (*Result, *types.Error) {
	payload, inv, err := parsePayload[RegisterConsumerChainPayload](request)
	if err != nil {
		return nil, err
	}
	period, err := parseUnbondPeriod(payload.UnbondPeriod)
	if err != nil {
		return nil, err
	}
	result, err := h.services.RegisterConsumerChain(request.Context(), inv, ledger.ConsumerChainRegisterParam{
		ConsumerChainId: payload.ConsumerChainId,
		UnbondPeriod:    period,
		Website:         payload.Website,
		Treasury:        payload.Treasury,
		PosAccountId:    payload.PosAccountId,
	})
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// UpdateConsumerChain godoc
// @Summary Update a consumer chain, governance only
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param chain_id path string true "Consumer chain id"
// @Param payload body UpdateConsumerChainPayload true "Fields to change"
// @Success 200 {object} PublicResponse[services.ConsumerChainResult] "Updated chain"
// @Failure 401 {object} types.Error "Caller is not the chain's governance"
// @Router /v1/consumer-chains/{chain_id} [patch]
func (h *Handler) UpdateConsumerChain(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	payload, inv, err := parsePayload[UpdateConsumerChainPayload](request)
	if err != nil {
		return nil, err
	}
	param := ledger.ConsumerChainUpdateParam{
		Website:      payload.Website,
		Treasury:     payload.Treasury,
		PosAccountId: payload.PosAccountId,
		Governance:   payload.Governance,
	}
	if payload.UnbondPeriod != nil {
		period, err := parseUnbondPeriod(*payload.UnbondPeriod)
		if err != nil {
			return nil, err
		}
		param.UnbondPeriod = &period
	}
	result, err := h.services.UpdateConsumerChain(request.Context(), inv, chainId, param)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// DeregisterConsumerChain godoc
// @Summary Deregister a consumer chain, governance only
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param chain_id path string true "Consumer chain id"
// @Success 200 {object} PublicResponse[services.ConsumerChainResult] "Deregistered chain"
// @Failure 403 {object} types.Error "Chain not active"
// @Router /v1/consumer-chains/{chain_id}/deregister [post]
func (h *Handler) DeregisterConsumerChain(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	_, inv, err := parsePayload[DepositPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.DeregisterConsumerChain(request.Context(), inv, chainId)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// Blackout godoc
// @Summary Bar a staker from bonding to the chain, position account only
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param chain_id path string true "Consumer chain id"
// @Param payload body BlackoutPayload true "Staker to bar"
// @Success 200 {object} PublicResponse[services.ConsumerChainResult] "Updated chain"
// @Router /v1/consumer-chains/{chain_id}/blackout [post]
func (h *Handler) Blackout(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	payload, inv, err := parsePayload[BlackoutPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.Blackout(request.Context(), inv, chainId, payload.StakerId)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// SlashRequest godoc
// @Summary Request a slash against bonded stakers, position account only
// @Description The attached deposit must equal the slash guarantee.
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param chain_id path string true "Consumer chain id"
// @Param payload body SlashRequestPayload true "Slash request"
// @Success 200 {object} PublicResponse[services.SlashResult] "Pending slash"
// @Router /v1/consumer-chains/{chain_id}/slashes [post]
func (h *Handler) SlashRequest(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	payload, inv, err := parsePayload[SlashRequestPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.SlashRequest(request.Context(), inv, chainId, payload.SlashItems, payload.EvidenceHash)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

// ResolveSlash godoc
// @Summary Approve or reject a pending slash, governance only
// @Accept json
// @Produce json
// @Param X-Account-Id header string true "Caller account"
// @Param chain_id path string true "Consumer chain id"
// @Param slash_id path int true "Slash id"
// @Param payload body ResolveSlashPayload true "Decision"
// @Success 200 {object} PublicResponse[services.SlashResult] "Resolved slash"
// @Failure 409 {object} types.Error "An affected pool is locked"
// @Router /v1/consumer-chains/{chain_id}/slashes/{slash_id}/resolve [post]
func (h *Handler) ResolveSlash(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	slashId, err := uintPathParam(request, "slash_id")
	if err != nil {
		return nil, err
	}
	payload, inv, err := parsePayload[ResolveSlashPayload](request)
	if err != nil {
		return nil, err
	}
	result, err := h.services.ResolveSlash(request.Context(), inv, chainId, slashId, payload.Approve)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}
