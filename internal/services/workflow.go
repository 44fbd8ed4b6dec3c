package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/restaking-ledger-service/internal/observability/tracing"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type Stage string

const (
	StageValidate       Stage = "validate"
	StageCheckWhitelist Stage = "check_whitelist"
	StageSelectAndLock  Stage = "select_and_lock"
	StagePing           Stage = "ping"
	StageDeposit        Stage = "deposit"
	StageUnstake        Stage = "unstake"
	StageWithdraw       Stage = "withdraw"
	StageTransfer       Stage = "transfer"
	StageBond           Stage = "bond"
	StageSettled        Stage = "settled"
	StageRolledBack     Stage = "rolled_back"
)

type compensation struct {
	name string
	fn   func(ctx context.Context) error
}

// workflow is one invocation of a multi-stage entrypoint. Each external
// call is a suspension point; when one fails the compensations registered
// so far run newest first and the invocation resolves to no value.
type workflow struct {
	s             *Services
	name          string
	stage         Stage
	poolId        string
	stakerId      string
	logger        zerolog.Logger
	compensations []compensation
}

// startWorkflow detaches the workflow from the caller's cancellation, a
// suspended workflow must always reach a terminal stage.
func (s *Services) startWorkflow(
	ctx context.Context, name, poolId, stakerId string,
) (context.Context, *workflow) {
	logger := log.Ctx(ctx).With().
		Str("workflow", name).
		Str("pool_id", poolId).
		Str("staker_id", stakerId).
		Logger()
	w := &workflow{
		s:        s,
		name:     name,
		stage:    StageValidate,
		poolId:   poolId,
		stakerId: stakerId,
		logger:   logger,
	}
	return logger.WithContext(context.WithoutCancel(ctx)), w
}

func (w *workflow) enter(stage Stage) {
	w.stage = stage
	w.logger.Debug().Str("stage", string(stage)).Msg("entering stage")
}

func (w *workflow) onRollback(name string, fn func(ctx context.Context) error) {
	w.compensations = append(w.compensations, compensation{name: name, fn: fn})
}

// commitPoint drops the compensations once an external effect can no longer be undone.
func (w *workflow) commitPoint() {
	w.compensations = nil
}

// await runs an external call at stage. It reports false after rolling the
// workflow back.
func (w *workflow) await(ctx context.Context, stage Stage, call func(ctx context.Context) *types.Error) bool {
	w.enter(stage)
	_, err := tracing.WrapWithSpan(ctx, w.name+"."+string(stage), func() (struct{}, error) {
		if apiErr := call(ctx); apiErr != nil {
			return struct{}{}, apiErr
		}
		return struct{}{}, nil
	})
	if err != nil {
		w.logger.Warn().Err(err).Str("stage", string(stage)).Msg("external call failed")
		w.rollback(ctx, err.Error())
		return false
	}
	return true
}

// rollback resolves the workflow to no value after a refused or failed external call.
func (w *workflow) rollback(ctx context.Context, reason string) {
	failedStage := w.stage
	w.compensate(ctx)
	metrics.RecordWorkflowOutcome(w.name, string(failedStage), metrics.RolledBack)
	w.s.recordCallbackFailure(ctx, &client.CallbackFailedEventData{
		Workflow: w.name,
		Stage:    string(failedStage),
		PoolId:   w.poolId,
		StakerId: w.stakerId,
		Reason:   reason,
	})
	w.stage = StageRolledBack
}

// abort ends the workflow with a synchronous error, undoing what was done so far.
func (w *workflow) abort(ctx context.Context, err error) *types.Error {
	apiErr := toApiError(err)
	if apiErr.StatusCode >= 500 {
		w.logger.Error().Err(err).Str("stage", string(w.stage)).Msg("workflow failed")
	} else {
		w.logger.Warn().Err(err).Str("stage", string(w.stage)).Msg("workflow rejected")
	}
	failedStage := w.stage
	w.compensate(ctx)
	metrics.RecordWorkflowOutcome(w.name, string(failedStage), metrics.Error)
	w.stage = StageRolledBack
	return apiErr
}

func (w *workflow) settle() {
	w.compensations = nil
	w.stage = StageSettled
	metrics.RecordWorkflowOutcome(w.name, string(StageSettled), metrics.Success)
}

func (w *workflow) compensate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(w.compensations) - 1; i >= 0; i-- {
		c := w.compensations[i]
		if err := c.fn(ctx); err != nil {
			w.logger.Error().Err(err).Str("compensation", c.name).Msg("compensation failed")
		}
	}
	w.compensations = nil
}
