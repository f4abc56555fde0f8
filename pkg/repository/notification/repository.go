package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/notification"
)

// Repository defines the interface for notification data access operations.
type Repository interface {
	Create(ctx context.Context, n *notification.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*notification.Notification, error)
	// MarkRead flags a notification owned by userID; anything else fails with domain.ErrNotFound.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}
