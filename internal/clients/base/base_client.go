package baseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

var ALLOWED_METHODS = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

const defaultRetryDelay = 400 * time.Millisecond

type BaseClient interface {
	// GetName labels the client in metrics and logs
	GetName() string
	GetBaseURL() string
	GetDefaultRequestTimeout() int
	GetHttpClient() *http.Client
}

type BaseClientOptions struct {
	Timeout int
	Path    string
	Headers map[string]string
	// Operation labels the call in metrics, defaults to the path
	Operation string
}

// ExecutionResponse is the reply of every mutating collaborator endpoint
type ExecutionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func isAllowedMethods(method string) bool {
	for _, allowedMethod := range ALLOWED_METHODS {
		if method == allowedMethod {
			return true
		}
	}
	return false
}

func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (result *R, apiErr *types.Error) {
	operation := opts.Operation
	if operation == "" {
		operation = opts.Path
	}
	timer := metrics.StartExternalCallDurationTimer(client.GetName(), operation)
	defer func() {
		if apiErr != nil {
			timer(apiErr)
		} else {
			timer(nil)
		}
	}()

	if !isAllowedMethods(method) {
		return nil, types.NewInternalServiceError(fmt.Errorf("method %s is not allowed", method))
	}
	url := fmt.Sprintf("%s%s", client.GetBaseURL(), opts.Path)
	timeout := client.GetDefaultRequestTimeout()
	// If timeout is set, use it instead of the default
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	// Set a timeout for the request
	ctxWithTimeout, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
	defer cancel()

	var req *http.Request
	var requestError error
	if input != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		body, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewErrorWithMsg(
				http.StatusInternalServerError,
				types.InternalServiceError,
				"failed to marshal request body",
			)
		}
		req, requestError = http.NewRequestWithContext(ctxWithTimeout, method, url, bytes.NewBuffer(body))
		if requestError == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, requestError = http.NewRequestWithContext(ctxWithTimeout, method, url, nil)
	}
	if requestError != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError, types.InternalServiceError, requestError.Error(),
		)
	}
	// Set headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if errors.Is(ctxWithTimeout.Err(), context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout,
				types.RequestTimeout,
				fmt.Sprintf("request timeout after %d ms at %s", timeout, url),
			)
		}
		log.Ctx(ctx).Error().Err(err).Msgf(
			"failed to send request to %s", url,
		)
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to send request to %s", url),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			types.InternalServiceError,
			fmt.Sprintf("internal server error when calling %s", url),
		)
	} else if resp.StatusCode >= http.StatusBadRequest {
		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			types.BadRequest,
			fmt.Sprintf("client error when calling %s", url),
		)
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to decode response from %s", url),
		)
	}

	return &output, nil
}

// SendRequestWithRetry retries SendRequest on server errors and timeouts.
// Only use it for idempotent queries.
func SendRequestWithRetry[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I, attempts uint,
) (*R, *types.Error) {
	var (
		output *R
		apiErr *types.Error
	)
	err := retry.Do(func() error {
		output, apiErr = SendRequest[I, R](ctx, client, method, opts, input)
		if apiErr == nil {
			return nil
		}
		if apiErr.StatusCode < http.StatusInternalServerError && apiErr.ErrorCode != types.RequestTimeout {
			return retry.Unrecoverable(apiErr)
		}
		return apiErr
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(defaultRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().Err(err).
				Str("client", client.GetName()).
				Uint("attempt", n+1).
				Uint("max_attempts", attempts).
				Msg("retrying request")
		}),
	)
	if err != nil {
		if apiErr != nil {
			return nil, apiErr
		}
		return nil, types.NewInternalServiceError(err)
	}
	return output, nil
}

// Execute posts input to a mutating endpoint and fails unless the
// collaborator reports success.
func Execute[I any](
	ctx context.Context, client BaseClient, opts *BaseClientOptions, input *I,
) *types.Error {
	resp, err := SendRequest[I, ExecutionResponse](ctx, client, http.MethodPost, opts, input)
	if err != nil {
		return err
	}
	if !resp.Success {
		return types.NewErrorWithMsg(
			http.StatusBadGateway,
			types.InternalServiceError,
			fmt.Sprintf("%s %s failed: %s", client.GetName(), opts.Path, resp.Message),
		)
	}
	return nil
}
