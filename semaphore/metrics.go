// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/semaphore/xmetrics"
)

// Names for our metrics
const (
	ResourcesGauge  = "semaphore_resources"
	FailuresCounter = "semaphore_acquire_failures"
	WaitHistogram   = "semaphore_acquire_wait_seconds"
)

// NameLabel is the label carrying the name of the instrumented semaphore
const NameLabel = "semaphore"

// Metrics returns the metrics used by instrumented semaphores.  These must be preregistered
// with an xmetrics.Registry before calling NewMeasures with it.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       ResourcesGauge,
			Type:       xmetrics.GaugeType,
			Help:       "The number of permits currently held",
			LabelNames: []string{NameLabel},
		},
		{
			Name:       FailuresCounter,
			Type:       xmetrics.CounterType,
			Help:       "The number of acquisitions that failed or timed out",
			LabelNames: []string{NameLabel},
		},
		{
			Name:       WaitHistogram,
			Type:       xmetrics.HistogramType,
			Help:       "The time spent waiting in blocking acquisitions, in seconds",
			LabelNames: []string{NameLabel},
			Buckets:    []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
	}
}

// Measures holds the realized metrics for one named semaphore
type Measures struct {
	Resources metrics.Gauge
	Failures  metrics.Counter
	Wait      metrics.Histogram
}

// NewMeasures realizes the Metrics() for the semaphore with the given name
func NewMeasures(p provider.Provider, name string) *Measures {
	return &Measures{
		Resources: p.NewGauge(ResourcesGauge).With(NameLabel, name),
		Failures:  p.NewCounter(FailuresCounter).With(NameLabel, name),
		Wait:      p.NewHistogram(WaitHistogram, 0).With(NameLabel, name),
	}
}

// InstrumentOptions returns the options that feed these measures from Instrument
func (m *Measures) InstrumentOptions() []InstrumentOption {
	return []InstrumentOption{
		WithResources(m.Resources),
		WithFailures(m.Failures),
		WithWaitDuration(m.Wait),
	}
}
