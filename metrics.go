//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch activity. A nil *Metrics records nothing.
type Metrics struct {
	calls     *prometheus.CounterVec
	panics    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	gcHandles prometheus.GaugeFunc
}

// NewMetrics creates the dispatch collectors under namespace and registers
// them with reg. Collectors already registered by an earlier call with the
// same namespace are reused.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_calls_total",
				Help:      "native callback dispatches by operation.",
			},
			[]string{"op"},
		),
		panics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_panics_total",
				Help:      "callback panics recovered at the native boundary by operation.",
			},
			[]string{"op"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "time spent serving a native callback.",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"op"},
		),
		gcHandles: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "gc_handles",
				Help:      "Go objects currently retained for native code.",
			},
			func() float64 { return float64(GCHandleCount()) },
		),
	}

	if reg == nil {
		return m, nil
	}
	var err error
	m.calls, err = registerOrReuse(reg, m.calls)
	if err != nil {
		return nil, err
	}
	m.panics, err = registerOrReuse(reg, m.panics)
	if err != nil {
		return nil, err
	}
	m.duration, err = registerOrReuse(reg, m.duration)
	if err != nil {
		return nil, err
	}
	m.gcHandles, err = registerOrReuse(reg, m.gcHandles)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(op string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(op).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) recovered(op string) {
	if m == nil {
		return
	}
	m.panics.WithLabelValues(op).Inc()
}
