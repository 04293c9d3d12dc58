//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveAndRecover(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry(), "qmlnet")
	require.NoError(t, err)

	m.observe(OpReadProperty, time.Millisecond)
	m.observe(OpReadProperty, time.Millisecond)
	m.recovered(OpReadProperty)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues(OpReadProperty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.panics.WithLabelValues(OpReadProperty)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.calls.WithLabelValues(OpWriteProperty)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(OpIsTypeValid, time.Second)
		m.recovered(OpIsTypeValid)
	})
}

func TestMetrics_ReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg, "qmlnet")
	require.NoError(t, err)
	b, err := NewMetrics(reg, "qmlnet")
	require.NoError(t, err)

	b.observe(OpBuildTypeInfo, time.Microsecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.calls.WithLabelValues(OpBuildTypeInfo)))
}

func TestMetrics_GCHandleGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "qmlnet")
	require.NoError(t, err)

	before := testutil.ToFloat64(m.gcHandles)
	h := RetainObject(struct{}{})
	defer ReleaseRetained(h)
	assert.Equal(t, before+1, testutil.ToFloat64(m.gcHandles))

	n, err := testutil.GatherAndCount(reg, "qmlnet_gc_handles")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_UnregisteredWhenNoRegisterer(t *testing.T) {
	m, err := NewMetrics(nil, "qmlnet")
	require.NoError(t, err)
	m.observe(OpInstantiateType, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues(OpInstantiateType)))
}
