package handlers

import (
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Health check the service, including ping database connection
// @Produce json
// @Success 200 {string} PublicResponse[string] "Server is up and running"
// @Router /healthcheck [get]
func (h *Handler) HealthCheck(request *http.Request) (*Result, *types.Error) {
	if err := h.services.DoHealthCheck(request.Context()); err != nil {
		return nil, types.NewInternalServiceError(err)
	}

	sequence, apiErr := h.services.GetSequence(request.Context())
	if apiErr != nil {
		return nil, apiErr
	}
	return NewResult(struct {
		Status   string `json:"status"`
		Sequence uint64 `json:"sequence"`
	}{Status: "Server is up and running", Sequence: sequence}), nil
}
