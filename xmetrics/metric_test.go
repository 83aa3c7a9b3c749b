package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNewCollectorMissingName(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Type: CounterType})
	assert.Nil(c)
	assert.Equal(ErrMissingName, err)
}

func testNewCollectorUnsupportedType(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Name: "test", Type: "unsupported"})
	assert.Nil(c)
	assert.Error(err)
}

func testNewCollectorCounter(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: CounterType, LabelNames: []string{"semaphore"}})
	)

	require.NoError(err)
	require.NotNil(c)

	counterVec, ok := c.(*prometheus.CounterVec)
	require.True(ok)
	assert.NotPanics(func() { counterVec.WithLabelValues("one").Inc() })
}

func testNewCollectorGauge(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: GaugeType})
	)

	require.NoError(err)
	require.NotNil(c)

	_, ok := c.(*prometheus.GaugeVec)
	assert.True(ok)
}

func testNewCollectorHistogram(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: HistogramType, Buckets: []float64{0.1, 1.0}})
	)

	require.NoError(err)
	require.NotNil(c)

	_, ok := c.(*prometheus.HistogramVec)
	assert.True(ok)
}

func TestNewCollector(t *testing.T) {
	t.Run("MissingName", testNewCollectorMissingName)
	t.Run("UnsupportedType", testNewCollectorUnsupportedType)
	t.Run("Counter", testNewCollectorCounter)
	t.Run("Gauge", testNewCollectorGauge)
	t.Run("Histogram", testNewCollectorHistogram)
}
