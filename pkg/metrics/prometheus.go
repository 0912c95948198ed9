package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements forecast.Recorder and the HTTP middleware recorder using Prometheus.
type Recorder struct {
	forecastRequests *prometheus.CounterVec
	forecastDuration prometheus.Histogram
	historyMonths    prometheus.Gauge

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpInFlight     *prometheus.GaugeVec
	httpResponseSize *prometheus.HistogramVec
}

// New creates a Prometheus recorder whose collectors are registered with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		forecastRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_forecast_requests_total",
				Help: "Total number of forecast requests by outcome",
			},
			[]string{"outcome"},
		),
		forecastDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "atlas_forecast_duration_seconds",
				Help:    "Duration of forecast computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		historyMonths: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "atlas_history_months",
				Help: "Number of months in the last loaded sales history",
			},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method", "class"},
		),
		httpInFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_in_flight_requests",
				Help: "Current number of in-flight HTTP requests",
			},
			[]string{"method"},
		),
		httpResponseSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{200, 500, 1_000, 2_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000},
			},
			[]string{"route", "method", "class"},
		),
	}
}

// RecordForecast records a finished forecast request.
func (r *Recorder) RecordForecast(outcome string, d time.Duration) {
	r.forecastRequests.WithLabelValues(outcome).Inc()
	r.forecastDuration.Observe(d.Seconds())
}

// RecordHistoryMonths records the size of the last aggregated history.
func (r *Recorder) RecordHistoryMonths(n int) {
	r.historyMonths.Set(float64(n))
}

func (r *Recorder) RequestStarted(method string) {
	r.httpInFlight.WithLabelValues(method).Inc()
}

// RequestFinished records a served HTTP request. route should be a templated
// path to keep label cardinality low.
func (r *Recorder) RequestFinished(route, method string, status, size int, d time.Duration) {
	class := statusClass(status)
	r.httpInFlight.WithLabelValues(method).Dec()
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method, class).Observe(d.Seconds())
	r.httpResponseSize.WithLabelValues(route, method, class).Observe(float64(size))
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
