package initializer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/piolcm/piol/infra"
	infra_eventbus "github.com/piolcm/piol/infra/eventbus"
	"github.com/piolcm/piol/infra/provider/mockpayment"
	"github.com/piolcm/piol/infra/provider/mtnmomo"
	"github.com/piolcm/piol/infra/provider/orangemoney"
	infra_repository "github.com/piolcm/piol/infra/repository"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/piolcm/piol/pkg/provider/payment"
)

// consumerGroup names the redis consumer group shared by every API instance.
const consumerGroup = "piol-handlers"

// InitializeDependencies opens the store and builds the provider registry and event bus.
// The returned closer releases the bus connections.
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	closer io.Closer,
	err error,
) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Config: cfg, Logger: logger}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	deps.Uow = infra_repository.NewUoW(db)

	deps.Providers = initProviders(cfg, logger)

	bus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	deps.EventBus = bus
	closer = nopCloser{}
	if c, ok := bus.(io.Closer); ok {
		closer = c
	}
	return deps, closer, nil
}

// initProviders registers the real adapters, or mocks standing in for both
// methods when PAYMENT_PROVIDER_MOCK_ENABLED is set.
func initProviders(cfg *config.App, logger *slog.Logger) payment.Registry {
	pp := cfg.PaymentProviders
	if pp == nil {
		pp = &config.PaymentProviders{}
	}
	if pp.Mock != nil && pp.Mock.Enabled {
		logger.Warn("Using mock payment providers")
		return payment.NewRegistry(
			mockpayment.NewMockPaymentProvider(transaction.MethodMTNMoMo, 5*time.Second),
			mockpayment.NewMockPaymentProvider(transaction.MethodOrangeMoney, 5*time.Second),
		)
	}
	mtn := config.MTNMoMo{}
	if pp.MTN != nil {
		mtn = *pp.MTN
	}
	orange := config.OrangeMoney{}
	if pp.Orange != nil {
		orange = *pp.Orange
	}
	return payment.NewRegistry(
		mtnmomo.New(mtn, logger),
		orangemoney.New(orange, logger),
	)
}

// initEventBus selects the bus by EVENT_BUS_DRIVER. An unreachable redis or
// kafka falls back to the in-memory bus so the API still serves requests.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	driver := ""
	if cfg.EventBus != nil {
		driver = strings.ToLower(strings.TrimSpace(cfg.EventBus.Driver))
	}
	switch driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(*cfg.Redis, consumerGroup, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	case "kafka":
		if cfg.Kafka == nil || len(cfg.Kafka.Brokers) == 0 {
			return nil, fmt.Errorf("event bus driver kafka requires KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(*cfg.Kafka, logger)
		if err != nil {
			logger.Warn("Kafka event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	}
	return nil, fmt.Errorf("unknown event bus driver %q", driver)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
