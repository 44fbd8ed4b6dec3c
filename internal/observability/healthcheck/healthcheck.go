package healthcheck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger zerolog.Logger = log.Logger

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

const dbPingTimeout = 5 * time.Second

// Dependency is a backing system the ledger cannot run without.
type Dependency interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name  string
	check func(ctx context.Context) error
}

func (c checkFunc) Name() string                    { return c.name }
func (c checkFunc) Check(ctx context.Context) error { return c.check(ctx) }

// NewDependency wraps a check function, e.g. a db ping.
func NewDependency(name string, check func(ctx context.Context) error) Dependency {
	return checkFunc{name: name, check: check}
}

// StartHealthCheckCron checks every dependency each cronTime seconds and
// stops the process once one is unhealthy.
func StartHealthCheckCron(ctx context.Context, cronTime int, dependencies ...Dependency) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime == 0 {
		cronTime = 60
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		if err := CheckDependencies(ctx, dependencies...); err != nil {
			logger.Error().Err(err).Msg("One or more ledger dependencies are not healthy.")
			terminateService()
		}
	})

	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

// CheckDependencies returns the first failing dependency.
func CheckDependencies(ctx context.Context, dependencies ...Dependency) error {
	for _, dependency := range dependencies {
		checkCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		err := dependency.Check(checkCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s: %w", dependency.Name(), err)
		}
	}
	return nil
}

func terminateService() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}
