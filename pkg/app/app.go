// Package app builds the services shared by the HTTP API and the CLI and
// subscribes the event handlers to the bus.
package app

import (
	"github.com/piolcm/piol/infra/metrics"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/service/auth"
	"github.com/piolcm/piol/pkg/service/notification"
	"github.com/piolcm/piol/pkg/service/payment"
	"github.com/piolcm/piol/pkg/service/property"
	"github.com/piolcm/piol/pkg/service/user"
	"github.com/piolcm/piol/pkg/service/verification"
)

type App struct {
	Deps                config.Deps
	Config              *config.App
	Metrics             *metrics.Metrics
	AuthService         *auth.Service
	UserService         *user.Service
	PropertyService     *property.Service
	PaymentService      *payment.Service
	VerificationService *verification.Service
	NotificationService *notification.Service
}

func New(deps config.Deps, cfg *config.App) *App {
	if deps.Config == nil {
		deps.Config = cfg
	}
	app := &App{
		Deps:    deps,
		Config:  cfg,
		Metrics: metrics.New(),
	}

	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
		},
	}
	if authFactory, ok := authMap[authStrategy(cfg)]; ok {
		app.AuthService = authFactory()
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, deps.Logger)
	}
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.PropertyService = property.NewService(deps)
	app.PaymentService = payment.NewService(deps)
	app.VerificationService = verification.NewService(deps)
	app.NotificationService = notification.NewService(deps)
	app.setupEventBus()
	return app
}

// setupEventBus registers the notification and metrics subscribers.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	a.NotificationService.Register(bus)
	a.Metrics.Register(bus)
}

func authStrategy(cfg *config.App) string {
	if cfg == nil || cfg.Auth == nil || cfg.Auth.Jwt == nil {
		return ""
	}
	return cfg.Auth.Strategy
}
