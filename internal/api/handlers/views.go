package handlers

import (
	"net/http"
	"strconv"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// GetStaker @Summary Get a staker
// @Produce json
// @Param staker_id path string true "Staker account id"
// @Success 200 {object} PublicResponse[ledger.Staker] "Staker"
// @Failure 404 {object} types.Error "Staker not found"
// @Router /v1/stakers/{staker_id} [get]
func (h *Handler) GetStaker(request *http.Request) (*Result, *types.Error) {
	stakerId, err := pathParam(request, "staker_id")
	if err != nil {
		return nil, err
	}
	staker, err := h.services.GetStaker(request.Context(), stakerId)
	if err != nil {
		return nil, err
	}
	return NewResult(staker), nil
}

// GetStakerStakedBalance @Summary Get the value of a staker's shares
// @Produce json
// @Param staker_id path string true "Staker account id"
// @Success 200 {object} PublicResponse[services.StakedBalancePublic] "Staked balance"
// @Router /v1/stakers/{staker_id}/staked-balance [get]
func (h *Handler) GetStakerStakedBalance(request *http.Request) (*Result, *types.Error) {
	stakerId, err := pathParam(request, "staker_id")
	if err != nil {
		return nil, err
	}
	balance, err := h.services.GetStakerStakedBalance(request.Context(), stakerId)
	if err != nil {
		return nil, err
	}
	return NewResult(balance), nil
}

// GetStakerBondingChains @Summary List the consumer chains a staker is bonded to
// @Produce json
// @Param staker_id path string true "Staker account id"
// @Success 200 {object} PublicResponse[[]services.BondingChainPublic] "Bonded chains"
// @Router /v1/stakers/{staker_id}/consumer-chains [get]
func (h *Handler) GetStakerBondingChains(request *http.Request) (*Result, *types.Error) {
	stakerId, err := pathParam(request, "staker_id")
	if err != nil {
		return nil, err
	}
	chains, err := h.services.GetStakerBondingChains(request.Context(), stakerId)
	if err != nil {
		return nil, err
	}
	return NewResult(chains), nil
}

// ListPendingWithdrawals @Summary List an account's pending withdrawals
// @Produce json
// @Param account_id path string true "Owner account id"
// @Success 200 {object} PublicResponse[[]services.PendingWithdrawalPublic] "Pending withdrawals"
// @Router /v1/accounts/{account_id}/pending-withdrawals [get]
func (h *Handler) ListPendingWithdrawals(request *http.Request) (*Result, *types.Error) {
	accountId, err := pathParam(request, "account_id")
	if err != nil {
		return nil, err
	}
	withdrawals, err := h.services.ListPendingWithdrawals(request.Context(), accountId)
	if err != nil {
		return nil, err
	}
	return NewResult(withdrawals), nil
}

// ListStakingPools @Summary List staking pools
// @Produce json
// @Param pagination_key query string false "Pagination key to fetch the next page of pools"
// @Success 200 {object} PublicResponse[[]ledger.StakingPool]{array} "Staking pools and pagination token"
// @Failure 400 {object} types.Error "Invalid pagination key"
// @Router /v1/pools [get]
func (h *Handler) ListStakingPools(request *http.Request) (*Result, *types.Error) {
	paginationKey := request.URL.Query().Get("pagination_key")
	pools, nextKey, err := h.services.ListStakingPools(request.Context(), paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(pools, nextKey), nil
}

// GetStakingPool @Summary Get a staking pool
// @Produce json
// @Param pool_id path string true "Staking pool id"
// @Success 200 {object} PublicResponse[ledger.StakingPool] "Staking pool"
// @Router /v1/pools/{pool_id} [get]
func (h *Handler) GetStakingPool(request *http.Request) (*Result, *types.Error) {
	poolId, err := pathParam(request, "pool_id")
	if err != nil {
		return nil, err
	}
	pool, err := h.services.GetStakingPool(request.Context(), poolId)
	if err != nil {
		return nil, err
	}
	return NewResult(pool), nil
}

// ListConsumerChains @Summary List consumer chains
// @Produce json
// @Param pagination_key query string false "Pagination key to fetch the next page of chains"
// @Success 200 {object} PublicResponse[[]ledger.ConsumerChain]{array} "Consumer chains and pagination token"
// @Router /v1/consumer-chains [get]
func (h *Handler) ListConsumerChains(request *http.Request) (*Result, *types.Error) {
	paginationKey := request.URL.Query().Get("pagination_key")
	chains, nextKey, err := h.services.ListConsumerChains(request.Context(), paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(chains, nextKey), nil
}

// GetConsumerChain @Summary Get a consumer chain
// @Produce json
// @Param chain_id path string true "Consumer chain id"
// @Success 200 {object} PublicResponse[ledger.ConsumerChain] "Consumer chain"
// @Router /v1/consumer-chains/{chain_id} [get]
func (h *Handler) GetConsumerChain(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	chain, err := h.services.GetConsumerChain(request.Context(), chainId)
	if err != nil {
		return nil, err
	}
	return NewResult(chain), nil
}

// GetValidatorSet @Summary Get a consumer chain's validator set
// @Description Bonded stakers ordered by staked balance, largest first.
// @Produce json
// @Param chain_id path string true "Consumer chain id"
// @Param limit query int false "Maximum number of validators"
// @Success 200 {object} PublicResponse[services.ValidatorSetPublic] "Validator set and the ledger sequence it was read at"
// @Router /v1/consumer-chains/{chain_id}/validator-set [get]
func (h *Handler) GetValidatorSet(request *http.Request) (*Result, *types.Error) {
	chainId, err := pathParam(request, "chain_id")
	if err != nil {
		return nil, err
	}
	limit := -1
	if raw := request.URL.Query().Get("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid limit")
		}
		limit = parsed
	}
	set, err := h.services.GetValidatorSet(request.Context(), chainId, limit)
	if err != nil {
		return nil, err
	}
	return NewResult(set), nil
}

// GetSlash @Summary Get a pending slash
// @Produce json
// @Param slash_id path int true "Slash id"
// @Success 200 {object} PublicResponse[ledger.Slash] "Pending slash"
// @Failure 404 {object} types.Error "Slash not found or already resolved"
// @Router /v1/slashes/{slash_id} [get]
func (h *Handler) GetSlash(request *http.Request) (*Result, *types.Error) {
	slashId, err := uintPathParam(request, "slash_id")
	if err != nil {
		return nil, err
	}
	slash, err := h.services.GetSlash(request.Context(), slashId)
	if err != nil {
		return nil, err
	}
	return NewResult(slash), nil
}
