// Package eventbus defines how domain events are published and consumed.
package eventbus

import (
	"context"

	"github.com/piolcm/piol/pkg/domain/events"
)

// HandlerFunc handles one event. A returned error is logged by the bus
// (and dead-lettered by the durable buses); it never reaches the emitter.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus is the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
