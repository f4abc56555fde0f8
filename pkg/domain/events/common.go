package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is anything published on the event bus.
type Event interface {
	Type() string
}

// FlowEvent carries the fields shared by every domain event.
type FlowEvent struct {
	ID            uuid.UUID `json:"id"`
	CorrelationID uuid.UUID `json:"correlationId"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewFlowEvent stamps a new event id and time. A nil correlation id is replaced by the event id.
func NewFlowEvent(correlationID uuid.UUID) FlowEvent {
	id := uuid.New()
	if correlationID == uuid.Nil {
		correlationID = id
	}
	return FlowEvent{ID: id, CorrelationID: correlationID, Timestamp: time.Now().UTC()}
}
