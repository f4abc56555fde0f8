package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypesCoverEveryType(t *testing.T) {
	t.Parallel()

	for name, ctor := range EventTypes {
		assert.Equal(t, name, ctor().Type(), "constructor registered under %s", name)
	}
	assert.Len(t, EventTypes, 7)
}

func TestDecodeThroughRegistry(t *testing.T) {
	t.Parallel()

	in := EscrowReleased{
		FlowEvent:       NewFlowEvent(uuid.Nil),
		TransactionID:   uuid.New(),
		Amount:          150000,
		Commission:      7500,
		DisbursedAmount: 142500,
		Currency:        "XAF",
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out := EventTypes[in.Type()]()
	require.NoError(t, json.Unmarshal(raw, out))
	got, ok := out.(*EscrowReleased)
	require.True(t, ok)
	assert.Equal(t, in.TransactionID, got.TransactionID)
	assert.Equal(t, in.CorrelationID, got.CorrelationID)
	assert.Equal(t, in.ID, got.CorrelationID, "nil correlation id falls back to the event id")
	assert.Equal(t, int64(142500), got.DisbursedAmount)
}
