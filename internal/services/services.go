package services

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/clients"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

// EventPublisher delivers ledger events. It returns the serialised event so
// that a failed delivery can be stored for replay.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *client.LedgerEvent) (string, error)
}

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
type Services struct {
	DbClient db.DBClient
	Clients  *clients.Clients
	Events   EventPublisher
	cfg      *config.Config
	clock    clockwork.Clock
}

func New(
	ctx context.Context, cfg *config.Config, clients *clients.Clients, events EventPublisher,
) (*Services, error) {
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("error while creating db client")
		return nil, err
	}
	return NewWithDependencies(cfg, dbClient, clients, events, clockwork.NewRealClock()), nil
}

func NewWithDependencies(
	cfg *config.Config, dbClient db.DBClient, clients *clients.Clients,
	events EventPublisher, clock clockwork.Clock,
) *Services {
	return &Services{
		DbClient: dbClient,
		Clients:  clients,
		Events:   events,
		cfg:      cfg,
		clock:    clock,
	}
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}

// Invocation carries who called an entrypoint and the value they attached.
type Invocation struct {
	Caller  string
	Deposit types.Amount
}

func (s *Services) now() time.Time {
	return s.clock.Now()
}

func (s *Services) currentEpoch() uint64 {
	return utils.EpochHeight(s.clock.Now(), s.cfg.Ledger.GetGenesisTime(), s.cfg.Ledger.EpochDuration)
}

func (s *Services) unlockDelay() uint64 {
	return s.cfg.Ledger.UnlockDelayEpochs
}

func (s *Services) requireRegistered(ctx context.Context, accountId string) *types.Error {
	if err := utils.ValidateAccountId(accountId); err != nil {
		return types.NewError(http.StatusUnauthorized, types.Unauthorized, err)
	}
	registered, err := s.DbClient.IsAccountRegistered(ctx, accountId)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to check account registration")
		return types.NewInternalServiceError(err)
	}
	if !registered {
		return types.NewErrorWithMsg(http.StatusForbidden, types.NotRegistered, "account is not registered")
	}
	return nil
}

// requireActionDeposit checks the minimal deposit attached to non-staking actions.
func (s *Services) requireActionDeposit(inv Invocation) *types.Error {
	if inv.Deposit.Lt(s.cfg.Ledger.GetActionDeposit()) {
		return invalidDeposit("attached deposit is below the action deposit " + s.cfg.Ledger.GetActionDeposit().String())
	}
	return nil
}

func (s *Services) findOrNewStaker(ctx context.Context, stakerId string) (*ledger.Staker, error) {
	staker, err := s.DbClient.FindStaker(ctx, stakerId)
	if err != nil {
		if db.IsNotFoundError(err) {
			return ledger.NewStaker(stakerId), nil
		}
		return nil, err
	}
	return staker, nil
}

// nextSequence must run inside the commit transaction of the operation it orders.
func (s *Services) nextSequence(txCtx context.Context) (uint64, error) {
	return s.DbClient.NextCounterValue(txCtx, model.SequenceCounter)
}

// refund sends value back through the bank. Refunds run outside any pool lock.
func (s *Services) refund(ctx context.Context, receiverId string, amount types.Amount) error {
	if amount.IsZero() {
		return nil
	}
	if err := s.Clients.Bank.Transfer(ctx, receiverId, amount); err != nil {
		return err
	}
	return nil
}
