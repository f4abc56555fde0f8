package metrics_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	infra_eventbus "github.com/piolcm/piol/infra/eventbus"
	"github.com/piolcm/piol/infra/metrics"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersFollowEvents(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	bus := infra_eventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Register(bus)

	require.NoError(t, bus.Emit(ctx, &events.PaymentProcessing{Method: "mtn_momo"}))
	require.NoError(t, bus.Emit(ctx, &events.PaymentCompleted{Method: "mtn_momo", Amount: 150000, Currency: "XAF"}))
	require.NoError(t, bus.Emit(ctx, &events.PaymentFailed{Method: "orange_money"}))
	require.NoError(t, bus.Emit(ctx, &events.EscrowReleased{Currency: "XAF", DisbursedAmount: 142500, Commission: 7500}))
	require.NoError(t, bus.Emit(ctx, &events.RefundRequested{}))
	require.NoError(t, bus.Emit(ctx, &events.VerificationCompleted{VerificationType: "property", Status: "approved"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payments.WithLabelValues("mtn_momo", "processing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payments.WithLabelValues("mtn_momo", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payments.WithLabelValues("orange_money", "failed")))
	assert.Equal(t, 150000.0, testutil.ToFloat64(m.Collected.WithLabelValues("XAF")))
	assert.Equal(t, 142500.0, testutil.ToFloat64(m.Released.WithLabelValues("XAF")))
	assert.Equal(t, 7500.0, testutil.ToFloat64(m.Commission.WithLabelValues("XAF")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refunds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("property", "approved")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := metrics.New()
	m.Refunds.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "piol_refund_requests_total 1")
}
