package app_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infra_eventbus "github.com/piolcm/piol/infra/eventbus"
	"github.com/piolcm/piol/internal/fixtures"
	"github.com/piolcm/piol/pkg/app"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/provider/payment"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresServicesAndSubscribers(t *testing.T) {
	env := fixtures.NewEnv(t)
	bus := infra_eventbus.NewWithMemory(slog.Default())
	cfg := &config.App{Auth: &config.Auth{Strategy: "jwt", Jwt: &config.Jwt{Secret: "s", Expiry: time.Hour}}}
	a := app.New(config.Deps{Uow: env.Uow, EventBus: bus, Providers: payment.Registry{}, Logger: slog.Default()}, cfg)

	require.NotNil(t, a.AuthService)
	require.NotNil(t, a.PaymentService)
	require.NotNil(t, a.PropertyService)
	require.NotNil(t, a.VerificationService)
	require.NotNil(t, a.UserService)

	token, err := a.AuthService.GenerateToken(context.Background(), env.Renter.User)
	require.NoError(t, err)
	assert.NotEmpty(t, token, "jwt strategy selected")

	require.NoError(t, bus.Emit(context.Background(), &events.RefundRequested{
		RenterID: env.Renter.UserID(), Amount: 1000, Currency: "XAF", Reason: "r",
	}))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.Refunds))
	got, err := a.NotificationService.ListNotifications(context.Background(), env.Admin, false, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewFallsBackToBasicAuth(t *testing.T) {
	env := fixtures.NewEnv(t)
	a := app.New(config.Deps{Uow: env.Uow, Logger: slog.Default()}, &config.App{})
	token, err := a.AuthService.GenerateToken(context.Background(), env.Renter.User)
	require.NoError(t, err)
	assert.Empty(t, token)
}
