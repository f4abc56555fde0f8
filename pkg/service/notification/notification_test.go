package notification_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/piolcm/piol/infra/eventbus"
	"github.com/piolcm/piol/internal/fixtures"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/notification"
	"github.com/piolcm/piol/pkg/domain/user"
	notificationsvc "github.com/piolcm/piol/pkg/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*notificationsvc.Service, *eventbus.MemoryEventBus, *fixtures.Env) {
	t.Helper()
	env := fixtures.NewEnv(t)
	bus := eventbus.NewWithMemory(slog.Default())
	svc := notificationsvc.NewService(config.Deps{Uow: env.Uow, EventBus: bus, Logger: slog.Default()})
	svc.Register(bus)
	return svc, bus, env
}

func TestPaymentCompletedNotifiesBothParties(t *testing.T) {
	ctx := context.Background()
	svc, bus, env := setup(t)
	txID := uuid.New()

	require.NoError(t, bus.Emit(ctx, &events.PaymentCompleted{
		FlowEvent:     events.NewFlowEvent(txID),
		TransactionID: txID,
		Reference:     "PIOL-20260101-abcdef012345",
		RenterID:      env.Renter.UserID(),
		LandlordID:    env.Landlord.UserID(),
		Amount:        150000,
		Currency:      "XAF",
	}))

	for _, ac := range []*authz.AuthContext{env.Renter, env.Landlord} {
		got, err := svc.ListNotifications(ctx, ac, false, 0)
		require.NoError(t, err)
		require.Len(t, got, 1, string(ac.User.Role))
		assert.Equal(t, notification.TypePaymentCompleted, got[0].Type)
		assert.Equal(t, ac.UserID(), got[0].UserID)
		require.NotNil(t, got[0].RelatedID)
		assert.Equal(t, txID, *got[0].RelatedID)
		assert.Contains(t, got[0].Message, "150000 XAF")
	}
}

func TestPaymentFailedCarriesReason(t *testing.T) {
	ctx := context.Background()
	svc, bus, env := setup(t)

	require.NoError(t, bus.Emit(ctx, events.PaymentFailed{
		TransactionID: uuid.New(),
		RenterID:      env.Renter.UserID(),
		LandlordID:    env.Landlord.UserID(),
		Amount:        5000,
		Reason:        "PAYER_NOT_FOUND",
	}))

	got, err := svc.ListNotifications(ctx, env.Renter, true, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypePaymentFailed, got[0].Type)
	assert.Contains(t, got[0].Message, "PAYER_NOT_FOUND")
}

func TestRefundRequestedFansOutToAdmins(t *testing.T) {
	ctx := context.Background()
	svc, bus, env := setup(t)
	second := fixtures.SeedUser(t, env.Uow, user.RoleAdmin, "")

	require.NoError(t, bus.Emit(ctx, &events.RefundRequested{
		TransactionID: uuid.New(),
		Reference:     "PIOL-20260101-000000000001",
		RenterID:      env.Renter.UserID(),
		LandlordID:    env.Landlord.UserID(),
		Amount:        100000,
		Currency:      "XAF",
		Reason:        "keys never handed over",
	}))

	for _, ac := range []*authz.AuthContext{env.Admin, second} {
		got, err := svc.ListNotifications(ctx, ac, false, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, notification.TypeRefundRequested, got[0].Type)
		assert.Contains(t, got[0].Message, "keys never handed over")
	}

	got, err := svc.ListNotifications(ctx, env.Renter, false, 0)
	require.NoError(t, err)
	assert.Empty(t, got, "the renter is not notified of their own request")
}

func TestVerificationCompletedNotifiesLandlord(t *testing.T) {
	ctx := context.Background()
	svc, bus, env := setup(t)

	require.NoError(t, bus.Emit(ctx, &events.VerificationCompleted{
		PropertyID:    uuid.New(),
		PropertyTitle: "Studio Bastos",
		LandlordID:    env.Landlord.UserID(),
		Status:        "rejected",
		Notes:         "title deed missing",
	}))

	got, err := svc.ListNotifications(ctx, env.Landlord, false, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeVerificationRejected, got[0].Type)
	assert.Contains(t, got[0].Message, "title deed missing")
	assert.Contains(t, got[0].Message, "Studio Bastos")
}

func TestEscrowReleasedAndMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, bus, env := setup(t)

	require.NoError(t, bus.Emit(ctx, &events.EscrowReleased{
		TransactionID:   uuid.New(),
		RenterID:        env.Renter.UserID(),
		LandlordID:      env.Landlord.UserID(),
		Amount:          150000,
		Commission:      7500,
		DisbursedAmount: 142500,
		Currency:        "XAF",
	}))

	got, err := svc.ListNotifications(ctx, env.Landlord, true, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "142500 XAF")

	err = svc.MarkNotificationRead(ctx, env.Renter, got[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "someone else's notification")

	require.NoError(t, svc.MarkNotificationRead(ctx, env.Landlord, got[0].ID))
	unread, err := svc.ListNotifications(ctx, env.Landlord, true, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)

	_, err = svc.ListNotifications(ctx, nil, false, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
