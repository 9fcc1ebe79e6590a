package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for record validation.
type Metrics struct {
	// Validated records by source and result
	Records *prometheus.CounterVec

	// Validation latency by source
	Duration *prometheus.HistogramVec
}

// New registers the validation metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validator_records_total",
			Help: "Total validated game records by source and result",
		}, []string{"source", "result"}), // result: "valid", "invalid"

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "validator_validation_duration_seconds",
			Help:    "Duration of a single record validation by source",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1},
		}, []string{"source"}),
	}
}

// ObserveValidation records one validation outcome and its duration.
func (m *Metrics) ObserveValidation(source string, valid bool, d time.Duration) {
	if m == nil {
		return
	}

	result := "invalid"
	if valid {
		result = "valid"
	}

	m.Records.WithLabelValues(source, result).Inc()
	m.Duration.WithLabelValues(source).Observe(d.Seconds())
}
