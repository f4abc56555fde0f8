package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/piolcm/piol/pkg/domain/events"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encodeEnvelope(event events.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Type(), err)
	}
	raw, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope %s: %w", event.Type(), err)
	}
	return raw, nil
}

// errUnknownEventType marks envelopes no registered constructor can decode.
var errUnknownEventType = fmt.Errorf("unknown event type")

func decodeEnvelope(raw []byte) (events.EventType, events.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	constructor, ok := events.EventTypes[env.Type]
	if !ok {
		return events.EventType(env.Type), nil, fmt.Errorf("%w: %q", errUnknownEventType, env.Type)
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		return events.EventType(env.Type), nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	return events.EventType(env.Type), evt, nil
}
