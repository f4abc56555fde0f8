// Package metrics exposes payment, escrow and verification counters to Prometheus.
// Counters are fed from domain events, so they only move on committed state.
package metrics

import (
	"context"
	"net/http"

	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "piol"

type Metrics struct {
	registry *prometheus.Registry

	Payments      *prometheus.CounterVec
	Collected     *prometheus.CounterVec
	Released      *prometheus.CounterVec
	Commission    *prometheus.CounterVec
	Refunds       prometheus.Counter
	Verifications *prometheus.CounterVec
}

// New builds the collectors on a dedicated registry, with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payments by method and outcome (processing, completed, failed).",
		}, []string{"method", "outcome"}),
		Collected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_collected_amount_total",
			Help:      "Amount moved into escrow, in minor units.",
		}, []string{"currency"}),
		Released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_released_amount_total",
			Help:      "Amount disbursed to landlords, in minor units.",
		}, []string{"currency"}),
		Commission: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_commission_amount_total",
			Help:      "Commission retained on release, in minor units.",
		}, []string{"currency"}),
		Refunds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refund_requests_total",
			Help:      "Refund requests raised by renters.",
		}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_completed_total",
			Help:      "Completed verifications by type and status.",
		}, []string{"type", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Payments, m.Collected, m.Released, m.Commission, m.Refunds, m.Verifications,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Register subscribes the counters to bus.
func (m *Metrics) Register(bus eventbus.Bus) {
	bus.Register(events.EventTypePaymentProcessing, m.observe)
	bus.Register(events.EventTypePaymentCompleted, m.observe)
	bus.Register(events.EventTypePaymentFailed, m.observe)
	bus.Register(events.EventTypeEscrowReleased, m.observe)
	bus.Register(events.EventTypeRefundRequested, m.observe)
	bus.Register(events.EventTypeVerificationCompleted, m.observe)
}

func (m *Metrics) observe(_ context.Context, e events.Event) error {
	switch evt := e.(type) {
	case *events.PaymentProcessing:
		m.Payments.WithLabelValues(evt.Method, "processing").Inc()
	case *events.PaymentCompleted:
		m.Payments.WithLabelValues(evt.Method, "completed").Inc()
		m.Collected.WithLabelValues(evt.Currency).Add(float64(evt.Amount))
	case *events.PaymentFailed:
		m.Payments.WithLabelValues(evt.Method, "failed").Inc()
	case *events.EscrowReleased:
		m.Released.WithLabelValues(evt.Currency).Add(float64(evt.DisbursedAmount))
		m.Commission.WithLabelValues(evt.Currency).Add(float64(evt.Commission))
	case *events.RefundRequested:
		m.Refunds.Inc()
	case *events.VerificationCompleted:
		m.Verifications.WithLabelValues(evt.VerificationType, evt.Status).Inc()
	}
	return nil
}
