package services

import (
	"errors"
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type errorMapping struct {
	target     error
	statusCode int
	errorCode  types.ErrorCode
}

var ledgerErrorMappings = []errorMapping{
	{ledger.ErrAlreadyLocked, http.StatusConflict, types.AlreadyLocked},
	{ledger.ErrZeroSharesComputed, http.StatusUnprocessableEntity, types.ZeroSharesComputed},
	{ledger.ErrInsufficientShares, http.StatusForbidden, types.InsufficientShares},
	{ledger.ErrInvariantViolation, http.StatusInternalServerError, types.InvariantViolation},
	{ledger.ErrUnbondingInProgress, http.StatusForbidden, types.UnbondingInProgress},
	{ledger.ErrAlreadyBonded, http.StatusConflict, types.BadRequest},
	{ledger.ErrNotBonded, http.StatusBadRequest, types.BadRequest},
	{ledger.ErrBlacklisted, http.StatusForbidden, types.Blacklisted},
	{ledger.ErrChainNotActive, http.StatusForbidden, types.ChainNotActive},
	{ledger.ErrInvalidConsumerChain, http.StatusBadRequest, types.ValidationError},
	{ledger.ErrUnauthorized, http.StatusUnauthorized, types.Unauthorized},
	{ledger.ErrPoolSelectionRejected, http.StatusForbidden, types.Forbidden},
	{ledger.ErrNoPoolSelected, http.StatusBadRequest, types.BadRequest},
	{ledger.ErrNotWithdrawable, http.StatusForbidden, types.NotWithdrawable},
	{ledger.ErrUnstakeBatchNotFound, http.StatusNotFound, types.NotFound},
	{ledger.ErrUnstakeBatchPending, http.StatusBadRequest, types.BadRequest},
	{ledger.ErrNothingToUnstake, http.StatusBadRequest, types.BadRequest},
}

// toApiError translates ledger and store errors into API errors.
// Anything unknown is an internal error.
func toApiError(err error) *types.Error {
	if err == nil {
		return nil
	}
	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	for _, m := range ledgerErrorMappings {
		if errors.Is(err, m.target) {
			return types.NewError(m.statusCode, m.errorCode, err)
		}
	}
	switch {
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case db.IsDuplicateKeyError(err):
		return types.NewError(http.StatusConflict, types.BadRequest, err)
	case db.IsInvalidPaginationTokenError(err):
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return types.NewInternalServiceError(err)
}

func invalidDeposit(msg string) *types.Error {
	return types.NewErrorWithMsg(http.StatusBadRequest, types.InvalidDeposit, msg)
}

func validationError(err error) *types.Error {
	return types.NewError(http.StatusBadRequest, types.ValidationError, err)
}
