// SPDX-License-Identifier: MIT

package equation

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	StepsTotal   *prometheus.CounterVec
	StepErrors   *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
	Formulas     *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		StepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvleq_steps_total",
				Help: "Total number of executed operation steps",
			},
			[]string{"op"},
		),
		StepErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvleq_step_errors_total",
				Help: "Total number of failed operation steps",
			},
			[]string{"op", "kind"},
		),
		StepDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lvleq_step_duration_seconds",
				Help:    "Operation step duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"op"},
		),
		Formulas: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lvleq_formulas_total",
				Help: "Total number of processed formulas",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) observeStep(op Op, d time.Duration, err error) {
	if m == nil {
		return
	}
	label := op.String()
	m.StepsTotal.WithLabelValues(label).Inc()
	m.StepDuration.WithLabelValues(label).Observe(d.Seconds())
	if err != nil {
		m.StepErrors.WithLabelValues(label, ErrorKind(err)).Inc()
	}
}

func (m *Metrics) observeFormula(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Formulas.WithLabelValues(result).Inc()
}

// ErrorKind names the engine sentinel in err's chain, or "other".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownName):
		return "unknown_name"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrShapeMismatch):
		return "shape_mismatch"
	case errors.Is(err, ErrSingularMatrix):
		return "singular_matrix"
	case errors.Is(err, ErrUnsupportedOperation):
		return "unsupported_operation"
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrDivideByZero):
		return "divide_by_zero"
	case errors.Is(err, ErrIntegerOverflow):
		return "integer_overflow"
	}

	return "other"
}
