package eventbus

import (
	"testing"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	in := &events.EscrowReleased{
		FlowEvent:       events.NewFlowEvent(uuid.Nil),
		TransactionID:   uuid.New(),
		Reference:       "PIOL-20260101-ABCDEF123456",
		Amount:          150000,
		Commission:      7500,
		DisbursedAmount: 142500,
		Currency:        "XAF",
	}
	raw, err := encodeEnvelope(in)
	require.NoError(t, err)

	eventType, out, err := decodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, events.EventTypeEscrowReleased, eventType)
	got, ok := out.(*events.EscrowReleased)
	require.True(t, ok)
	assert.Equal(t, in.ID, got.ID)
	assert.True(t, in.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, in.TransactionID, got.TransactionID)
	assert.Equal(t, in.Reference, got.Reference)
	assert.Equal(t, in.Commission, got.Commission)
	assert.Equal(t, in.DisbursedAmount, got.DisbursedAmount)
}

func TestDecodeEnvelopeUnknownType(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"type":"Account.Opened","payload":{}}`))
	assert.ErrorIs(t, err, errUnknownEventType)

	_, _, err = decodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}

func TestStreamAndTopicNames(t *testing.T) {
	assert.Equal(t, "piol:events:payment:completed", streamNameFor("piol:", events.EventTypePaymentCompleted))
	assert.Equal(t, "piol:dlq:escrow:refundrequested", dlqStreamName("piol:", events.EventTypeRefundRequested))
	assert.Equal(t, "notify:group:verification:completed", groupNameFor("notify", events.EventTypeVerificationCompleted))
	assert.Equal(t, "piol.payment.failed", topicNameFor("piol", events.EventTypePaymentFailed))
	assert.Equal(t, "piol.payment.failed.dlq", dlqTopicNameFor("piol", events.EventTypePaymentFailed))
}
