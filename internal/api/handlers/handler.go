package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/babylonchain/restaking-ledger-service/internal/api/middlewares"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/services"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResultWithPagination returns a successful result, with default status code 200
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

// NewWorkflowResult answers a multi-stage mutation. A nil outcome means the
// workflow rolled back after an external call failed; the failure is
// reported on the event queue, the request itself is accepted.
func NewWorkflowResult[T any](outcome *T) *Result {
	if outcome == nil {
		return &Result{Data: &PublicResponse[*T]{}, Status: http.StatusAccepted}
	}
	return NewResult(outcome)
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

// DepositPayload is embedded in every mutation body: the value attached to the call.
type DepositPayload struct {
	Deposit types.Amount `json:"deposit" swaggertype:"string" example:"1"`
}

func (p DepositPayload) deposit() types.Amount {
	return p.Deposit
}

type depositCarrier interface {
	deposit() types.Amount
}

// parsePayload decodes the JSON body and builds the invocation of the
// authenticated caller.
func parsePayload[T depositCarrier](request *http.Request) (T, services.Invocation, *types.Error) {
	var payload T
	caller := middlewares.CallerFromContext(request.Context())
	if caller == "" {
		return payload, services.Invocation{}, types.NewErrorWithMsg(
			http.StatusUnauthorized, types.Unauthorized, middlewares.CallerHeader+" header is required",
		)
	}
	if err := utils.ValidateAccountId(caller); err != nil {
		return payload, services.Invocation{}, types.NewError(http.StatusUnauthorized, types.Unauthorized, err)
	}
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return payload, services.Invocation{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "invalid request payload",
		)
	}
	return payload, services.Invocation{Caller: caller, Deposit: payload.deposit()}, nil
}

func pathParam(request *http.Request, name string) (string, *types.Error) {
	value := chi.URLParam(request, name)
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, name+" is required")
	}
	return value, nil
}

func uintPathParam(request *http.Request, name string) (uint64, *types.Error) {
	value, apiErr := pathParam(request, name)
	if apiErr != nil {
		return 0, apiErr
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, fmt.Sprintf("invalid %s", name))
	}
	return parsed, nil
}
