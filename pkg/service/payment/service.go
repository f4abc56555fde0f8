// Package payment orchestrates the escrow payment lifecycle: it routes a
// transaction to its mobile-money provider, converges provider status from
// polling and webhooks through a single idempotent mutation, and releases
// held funds to the landlord minus the platform commission.
//
// The service is the only writer of a transaction's payment and escrow status.
package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/eventbus"
	provider "github.com/piolcm/piol/pkg/provider/payment"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service provides the payment orchestrator operations.
type Service struct {
	uow                repository.UnitOfWork
	providers          provider.Registry
	eventBus           eventbus.Bus
	logger             *slog.Logger
	commissionRate     decimal.Decimal
	disbursementMethod transaction.Method
	callbackBaseURL    string
	now                func() time.Time
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		uow:                deps.Uow,
		providers:          deps.Providers,
		eventBus:           deps.EventBus,
		logger:             logger.With("service", "payment"),
		commissionRate:     transaction.DefaultCommissionRate,
		disbursementMethod: transaction.MethodMTNMoMo,
		now:                func() time.Time { return time.Now().UTC() },
	}
	if cfg := deps.Config; cfg != nil {
		if cfg.Escrow != nil {
			s.commissionRate = cfg.Escrow.CommissionRate
			if cfg.Escrow.DisbursementMethod != "" {
				s.disbursementMethod = transaction.Method(cfg.Escrow.DisbursementMethod)
			}
		}
		s.callbackBaseURL = strings.TrimRight(cfg.CallbackBaseURL, "/")
	}
	return s
}

// CommissionRate is the share of released escrow kept by the platform.
func (s *Service) CommissionRate() decimal.Decimal {
	return s.commissionRate
}

// emit publishes evt after the state change it describes has been committed.
// Publishing failures are logged; the committed change stands.
func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(ctx, evt); err != nil {
		s.logger.Error("failed to emit event", "event", evt.Type(), "error", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
