package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type groups notifications for display.
type Type string

const (
	TypePaymentCompleted     Type = "payment_completed"
	TypePaymentFailed        Type = "payment_failed"
	TypeEscrowReleased       Type = "escrow_released"
	TypeRefundRequested      Type = "refund_requested"
	TypeVerificationApproved Type = "verification_approved"
	TypeVerificationRejected Type = "verification_rejected"
)

// Notification is a message addressed to one user.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Type      Type       `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `json:"relatedId,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}

// New builds an unread notification.
func New(userID uuid.UUID, typ Type, title, message string, relatedID uuid.UUID) *Notification {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if relatedID != uuid.Nil {
		n.RelatedID = &relatedID
	}
	return n
}
