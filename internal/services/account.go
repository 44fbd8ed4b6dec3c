package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type AccountPublic struct {
	AccountId    string    `json:"account_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegisterAccount lets the caller use the staking entrypoints.
func (s *Services) RegisterAccount(ctx context.Context, inv Invocation) (*AccountPublic, *types.Error) {
	if err := utils.ValidateAccountId(inv.Caller); err != nil {
		return nil, validationError(err)
	}
	now := s.now()
	if err := s.DbClient.RegisterAccount(ctx, inv.Caller, now); err != nil {
		return nil, toApiError(err)
	}
	log.Ctx(ctx).Info().Str("account_id", inv.Caller).Msg("account registered")
	return &AccountPublic{AccountId: inv.Caller, RegisteredAt: now}, nil
}

// GetSequence returns the sequence of the last committed operation.
func (s *Services) GetSequence(ctx context.Context) (uint64, *types.Error) {
	sequence, err := s.DbClient.GetCounterValue(ctx, model.SequenceCounter)
	if err != nil {
		return 0, toApiError(err)
	}
	return sequence, nil
}
