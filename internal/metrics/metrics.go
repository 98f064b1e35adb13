// Package metrics records request outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/frankli0324/go-rawget/internal/model"
)

// Recorder receives one ObserveEvent per emitted event and one
// ObserveRequest when a request finishes.
type Recorder interface {
	ObserveEvent(ev model.RequestEvent)
	ObserveRequest(outcome string, d time.Duration)
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type NopRecorder struct{}

func (NopRecorder) ObserveEvent(model.RequestEvent)        {}
func (NopRecorder) ObserveRequest(string, time.Duration) {}

// PrometheusRecorder implements Recorder with collectors registered on
// the Registerer given to NewPrometheusRecorder.
type PrometheusRecorder struct {
	events       *prometheus.CounterVec
	requests     *prometheus.CounterVec
	payloadBytes prometheus.Counter
	duration     prometheus.Histogram
}

func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	f := promauto.With(reg)
	return &PrometheusRecorder{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rawget_events_total",
			Help: "Total number of request events emitted",
		}, []string{"kind"}), // kind: status, payload, error
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rawget_requests_total",
			Help: "Total number of finished requests",
		}, []string{"outcome"}),
		payloadBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "rawget_payload_bytes_total",
			Help: "Total number of payload bytes received",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rawget_request_duration_seconds",
			Help:    "Duration of requests from resolution to the last event",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *PrometheusRecorder) ObserveEvent(ev model.RequestEvent) {
	m.events.WithLabelValues(ev.Kind.String()).Inc()
	if ev.Kind == model.EventPayload {
		m.payloadBytes.Add(float64(len(ev.Payload)))
	}
}

func (m *PrometheusRecorder) ObserveRequest(outcome string, d time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}
