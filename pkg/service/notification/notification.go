// Package notification turns domain events into per-user notifications and
// serves them back to their recipients.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/notification"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/domain/verification"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/piolcm/piol/pkg/repository"
)

const defaultListLimit = 50

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: deps.Uow, logger: logger.With("service", "notification")}
}

// Register subscribes the notification handlers to bus.
func (s *Service) Register(bus eventbus.Bus) {
	bus.Register(events.EventTypePaymentCompleted, s.HandlePaymentCompleted)
	bus.Register(events.EventTypePaymentFailed, s.HandlePaymentFailed)
	bus.Register(events.EventTypeEscrowReleased, s.HandleEscrowReleased)
	bus.Register(events.EventTypeRefundRequested, s.HandleRefundRequested)
	bus.Register(events.EventTypeVerificationCompleted, s.HandleVerificationCompleted)
}

// ListNotifications returns the caller's most recent notifications.
func (s *Service) ListNotifications(
	ctx context.Context,
	ac *authz.AuthContext,
	unreadOnly bool,
	limit int,
) ([]*notification.Notification, error) {
	u, err := authz.RequireUser(ac, "notification.ListNotifications")
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, u.ID, unreadOnly, limit)
}

// MarkNotificationRead flags one of the caller's notifications as read.
// Someone else's notification is reported as not found.
func (s *Service) MarkNotificationRead(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) error {
	const op = "notification.MarkNotificationRead"
	u, err := authz.RequireUser(ac, op)
	if err != nil {
		return err
	}
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	if err = repo.MarkRead(ctx, id, u.ID); err != nil {
		return domain.AsNotFound(err, op, "notification")
	}
	return nil
}

func (s *Service) HandlePaymentCompleted(ctx context.Context, e events.Event) error {
	evt, ok := asPointer[events.PaymentCompleted](e)
	if !ok {
		return s.skip(e)
	}
	amount := formatAmount(evt.Amount, evt.Currency)
	return s.deliver(ctx, e,
		notification.New(evt.RenterID, notification.TypePaymentCompleted, "Payment received",
			fmt.Sprintf("Your payment of %s (%s) was received and is held in escrow.", amount, evt.Reference),
			evt.TransactionID),
		notification.New(evt.LandlordID, notification.TypePaymentCompleted, "Rent paid into escrow",
			fmt.Sprintf("A renter paid %s (%s). Funds are held until release.", amount, evt.Reference),
			evt.TransactionID),
	)
}

func (s *Service) HandlePaymentFailed(ctx context.Context, e events.Event) error {
	evt, ok := asPointer[events.PaymentFailed](e)
	if !ok {
		return s.skip(e)
	}
	msg := fmt.Sprintf("The payment of %s (%s) did not go through.", formatAmount(evt.Amount, evt.Currency), evt.Reference)
	if evt.Reason != "" {
		msg += " Reason: " + evt.Reason
	}
	return s.deliver(ctx, e,
		notification.New(evt.RenterID, notification.TypePaymentFailed, "Payment failed", msg, evt.TransactionID),
		notification.New(evt.LandlordID, notification.TypePaymentFailed, "Payment failed", msg, evt.TransactionID),
	)
}

func (s *Service) HandleEscrowReleased(ctx context.Context, e events.Event) error {
	evt, ok := asPointer[events.EscrowReleased](e)
	if !ok {
		return s.skip(e)
	}
	return s.deliver(ctx, e,
		notification.New(evt.LandlordID, notification.TypeEscrowReleased, "Funds released",
			fmt.Sprintf("%s was sent to your mobile money account (commission %s).",
				formatAmount(evt.DisbursedAmount, evt.Currency), formatAmount(evt.Commission, evt.Currency)),
			evt.TransactionID),
		notification.New(evt.RenterID, notification.TypeEscrowReleased, "Escrow released",
			fmt.Sprintf("Your payment %s was released to the landlord.", evt.Reference),
			evt.TransactionID),
	)
}

// HandleRefundRequested notifies every admin; refunds are executed by hand.
func (s *Service) HandleRefundRequested(ctx context.Context, e events.Event) error {
	evt, ok := asPointer[events.RefundRequested](e)
	if !ok {
		return s.skip(e)
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return err
	}
	admins, err := repo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Refund requested for %s (%s): %s",
		evt.Reference, formatAmount(evt.Amount, evt.Currency), evt.Reason)
	ns := make([]*notification.Notification, 0, len(admins))
	for _, a := range admins {
		ns = append(ns, notification.New(a.ID, notification.TypeRefundRequested, "Refund requested", msg, evt.TransactionID))
	}
	return s.deliver(ctx, e, ns...)
}

func (s *Service) HandleVerificationCompleted(ctx context.Context, e events.Event) error {
	evt, ok := asPointer[events.VerificationCompleted](e)
	if !ok {
		return s.skip(e)
	}
	var n *notification.Notification
	if evt.Status == string(verification.StatusApproved) {
		n = notification.New(evt.LandlordID, notification.TypeVerificationApproved, "Property verified",
			fmt.Sprintf("%q passed verification and can now be published.", evt.PropertyTitle), evt.PropertyID)
	} else {
		msg := fmt.Sprintf("%q did not pass verification.", evt.PropertyTitle)
		if evt.Notes != "" {
			msg += " Reason: " + evt.Notes
		}
		n = notification.New(evt.LandlordID, notification.TypeVerificationRejected, "Verification rejected", msg, evt.PropertyID)
	}
	return s.deliver(ctx, e, n)
}

func (s *Service) deliver(ctx context.Context, e events.Event, ns ...*notification.Notification) error {
	log := s.logger.With("event_type", e.Type())
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NotificationRepository()
		if err != nil {
			return err
		}
		for _, n := range ns {
			if n.UserID == uuid.Nil {
				continue
			}
			if err = repo.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("deliver notifications failed", "error", err)
		return err
	}
	log.Debug("notifications delivered", "count", len(ns))
	return nil
}

func (s *Service) skip(e events.Event) error {
	s.logger.Warn("Skipping unexpected event type", "event_type", e.Type())
	return nil
}

// asPointer accepts both *T and T; in-process buses carry pointers, decoded
// envelopes may not.
func asPointer[T any](e events.Event) (*T, bool) {
	switch v := any(e).(type) {
	case *T:
		return v, v != nil
	case T:
		return &v, true
	}
	return nil, false
}

func formatAmount(amount int64, currency string) string {
	if currency == "" {
		currency = "XAF"
	}
	return fmt.Sprintf("%d %s", amount, currency)
}
