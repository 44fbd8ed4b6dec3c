package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/babylonchain/restaking-ledger-service/cmd/restaking-ledger/cli"
	"github.com/babylonchain/restaking-ledger-service/cmd/restaking-ledger/scripts"
	"github.com/babylonchain/restaking-ledger-service/internal/api"
	"github.com/babylonchain/restaking-ledger-service/internal/clients"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/observability/healthcheck"
	"github.com/babylonchain/restaking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/restaking-ledger-service/internal/queue"
	"github.com/babylonchain/restaking-ledger-service/internal/services"
)

const shutdownTimeout = 15 * time.Second

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	metrics.Init(cfg.Metrics)

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger db model")
	}

	queues := queue.New(cfg.Queue)
	defer func() {
		if err := queues.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping event queue")
		}
	}()

	svc, err := services.New(ctx, cfg, clients.New(cfg), queues)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger services layer")
	}

	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unpublished events.")
		if err := scripts.ReplayUnpublishedEvents(ctx, svc, queues); err != nil {
			log.Fatal().Err(err).Msg("error while replaying unpublished events")
		}
		return
	}

	err = healthcheck.StartHealthCheckCron(ctx, cfg.Server.HealthCheckInterval,
		healthcheck.NewDependency("db", svc.DoHealthCheck),
		healthcheck.NewDependency("queue", func(context.Context) error { return queues.IsConnectionHealthy() }),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, svc)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up restaking ledger api")
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("Shutting down restaking ledger api")
		return apiServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("restaking ledger api stopped with error")
	}
}
