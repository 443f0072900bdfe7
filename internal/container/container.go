package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/domain/service"
	"github.com/oksasatya/go-user-management/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

// Container holds the components shared by the router modules. It is
// built once per process (or per test) and passed explicitly.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Accounts repository.AccountRepository
	Hasher   service.PasswordHasher
	Events   application.EventPublisher

	closers []func()
}

// New opens the configured store and optional event publisher. Call Close
// when done.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Hasher: helpers.NewBcryptHasher(cfg.BcryptCost),
	}

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		c.Accounts = memory.NewAccountRepository()
		logger.Warn("using in-memory account store; data is lost on exit")
	case config.StoreDriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			c.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c.Accounts = pginfra.NewAccountRepository(pool)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.EventsEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQAccountQueue)
		if err != nil {
			// events are best effort; the API keeps serving without them
			logger.WithError(err).Warn("account events disabled: rabbitmq unavailable")
		} else {
			c.Events = pub
			c.closers = append(c.closers, pub.Close)
		}
	}

	helpers.LogInfo(logger, "container ready", logrus.Fields{
		"store":  cfg.StoreDriver,
		"events": c.Events != nil,
	})

	if cfg.SeedOnEmpty {
		if _, err := application.SeedSamples(ctx, c.Accounts, c.Hasher, logger); err != nil {
			c.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// AccountService builds the account service over the container's components.
func (c *Container) AccountService() *application.Service {
	return application.NewService(c.Accounts, c.Hasher, c.Events, c.Logger)
}
