package config

import (
	"log/slog"

	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/piolcm/piol/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow       repository.UnitOfWork
	Providers payment.Registry
	EventBus  eventbus.Bus
	Logger    *slog.Logger
	Config    *App
}
