// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"sync"

	"github.com/xmidt-org/semaphore/clock"
)

type options struct {
	lock  sync.Locker
	cond  CondFactory
	clock clock.Interface
}

// Option configures the backend of a Semaphore created with New
type Option func(*options)

// WithLocker sets the exclusive lock guarding the count.  The lock must not be shared with
// anything else.  A nil lock leaves the default sync.Mutex in place.
func WithLocker(l sync.Locker) Option {
	return func(o *options) {
		if l != nil {
			o.lock = l
		}
	}
}

// WithCond sets the factory for the condition the semaphore waits on.  A nil factory leaves
// NewChanCond in place.
func WithCond(f CondFactory) Option {
	return func(o *options) {
		if f != nil {
			o.cond = f
		}
	}
}

// WithClock sets the clock used for timed acquisition.  A nil clock leaves clock.System in place.
func WithClock(c clock.Interface) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
