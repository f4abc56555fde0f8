package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Payment events
	EventTypePaymentProcessing EventType = "Payment.Processing"
	EventTypePaymentCompleted  EventType = "Payment.Completed"
	EventTypePaymentFailed     EventType = "Payment.Failed"

	// Escrow events
	EventTypeEscrowReleased  EventType = "Escrow.Released"
	EventTypeRefundRequested EventType = "Escrow.RefundRequested"

	// Verification events
	EventTypeVerificationClaimed   EventType = "Verification.Claimed"
	EventTypeVerificationCompleted EventType = "Verification.Completed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
