// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/semaphore/clock"
	"github.com/xmidt-org/semaphore/xmetrics"
	"go.uber.org/zap"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a metric that tracks the number of permits currently held through
// the semaphore.  If a nil adder is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewGauge()
		}
	}
}

// WithFailures establishes a metric that tracks how many acquisitions failed, i.e. TryAcquire
// calls that returned false and timed acquisitions that timed out.  If a nil adder is supplied,
// failure counts are discarded.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// WithWaitDuration establishes a metric that observes, in seconds, how long each Acquire,
// AcquireFor, and AcquireUntil call took.  If a nil observer is supplied, durations are discarded.
func WithWaitDuration(o xmetrics.Observer) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if o != nil {
			i.waits = o
		} else {
			i.waits = discard.NewHistogram()
		}
	}
}

// WithLogger sets the logger that receives debug output about timed out acquisitions.
// If a nil logger is supplied, output is discarded.
func WithLogger(l *zap.Logger) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if l != nil {
			i.logger = l
		} else {
			i.logger = zap.NewNop()
		}
	}
}

// WithInstrumentClock sets the clock used to measure wait durations.  If a nil clock is supplied,
// clock.System is used.
func WithInstrumentClock(c clock.Interface) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if c != nil {
			i.clock = c
		} else {
			i.clock = clock.System()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.  This function panics
// if s is nil.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("A delegate semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		clock:     clock.System(),
		logger:    zap.NewNop(),
		resources: discard.NewGauge(),
		failures:  discard.NewCounter(),
		waits:     discard.NewHistogram(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	clock     clock.Interface
	logger    *zap.Logger
	resources xmetrics.Adder
	failures  xmetrics.Adder
	waits     xmetrics.Observer
}

// observe records the time elapsed since start and the outcome of an acquisition
func (is *instrumentedSemaphore) observe(start time.Time, acquired bool) time.Duration {
	elapsed := is.clock.Now().Sub(start)
	is.waits.Observe(elapsed.Seconds())

	if acquired {
		is.resources.Add(1.0)
	} else {
		is.failures.Add(1.0)
	}

	return elapsed
}

func (is *instrumentedSemaphore) Acquire() {
	start := is.clock.Now()
	is.Interface.Acquire()
	is.observe(start, true)
}

func (is *instrumentedSemaphore) TryAcquire() bool {
	acquired := is.Interface.TryAcquire()
	if acquired {
		is.resources.Add(1.0)
	} else {
		is.failures.Add(1.0)
	}

	return acquired
}

func (is *instrumentedSemaphore) AcquireFor(d time.Duration) bool {
	start := is.clock.Now()
	acquired := is.Interface.AcquireFor(d)
	elapsed := is.observe(start, acquired)
	if !acquired {
		is.logger.Debug("semaphore acquisition timed out",
			zap.Duration("timeout", d),
			zap.Duration("elapsed", elapsed),
		)
	}

	return acquired
}

func (is *instrumentedSemaphore) AcquireUntil(deadline time.Time) bool {
	start := is.clock.Now()
	acquired := is.Interface.AcquireUntil(deadline)
	elapsed := is.observe(start, acquired)
	if !acquired {
		is.logger.Debug("semaphore acquisition timed out",
			zap.Time("deadline", deadline),
			zap.Duration("elapsed", elapsed),
		)
	}

	return acquired
}

func (is *instrumentedSemaphore) Release() {
	is.Interface.Release()
	is.resources.Add(-1.0)
}
