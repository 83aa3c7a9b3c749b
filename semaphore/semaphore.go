// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/xmidt-org/semaphore/clock"
)

var (
	// ErrInvalidArgument is returned when a semaphore cannot be created from the supplied values,
	// e.g. a negative initial count.
	ErrInvalidArgument = errors.New("invalid semaphore argument")

	// ErrResourceCorruption indicates the semaphore's state can no longer be trusted.  It is never
	// returned.  Operations that detect corruption panic with an error wrapping it.
	ErrResourceCorruption = errors.New("semaphore state is corrupted")
)

// Interface is the acquire and release behavior shared by a Semaphore and its decorators.  When any
// acquire method is successful, Release *must* be called to return the permit.
type Interface interface {
	// Acquire blocks until a permit is available, then takes it.
	Acquire()

	// TryAcquire takes a permit if one is available, returning false immediately otherwise.
	TryAcquire() bool

	// AcquireFor waits at most the given duration for a permit.  It returns false, leaving the
	// count unchanged, if the duration elapses first.
	AcquireFor(time.Duration) bool

	// AcquireUntil waits for a permit until the given deadline.  It returns false, leaving the
	// count unchanged, if the deadline passes first.
	AcquireUntil(time.Time) bool

	// Release returns a permit, waking one waiter if there is one.
	Release()
}

// noCopy may be embedded into structs which must not be copied after first use.
// go vet's copylocks check reports any copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Semaphore is a counting semaphore built on a lock and a condition.  Semaphores are shared by
// pointer and must never be copied, since a copy would split the count.
//
// There is no FIFO guarantee.  A Release wakes one waiter, but a goroutine calling TryAcquire or
// arriving in Acquire may take the permit first, in which case the woken waiter suspends again.
//
// A Semaphore has no Close.  Discarding one while goroutines are blocked in it leaves those
// goroutines suspended forever, and it is the caller's job to avoid that.
type Semaphore struct {
	_ noCopy

	lock  sync.Locker
	cond  Cond
	clock clock.Interface

	// INVARIANT: count >= 0
	//
	// GUARDED_BY(lock)
	count int
}

var _ Interface = (*Semaphore)(nil)

// New constructs a semaphore holding the given number of permits.  A negative count results
// in an error wrapping ErrInvalidArgument.  With no options, the semaphore uses a sync.Mutex,
// the channel-based Cond, and the system clock.
func New(initial int, o ...Option) (*Semaphore, error) {
	if initial < 0 {
		return nil, fmt.Errorf("%w: initial count %d is negative", ErrInvalidArgument, initial)
	}

	so := options{
		cond: NewChanCond,
	}

	for _, f := range o {
		f(&so)
	}

	if so.lock == nil {
		so.lock = new(sync.Mutex)
	}

	if so.clock == nil {
		so.clock = clock.System()
	}

	s := &Semaphore{
		lock:  so.lock,
		cond:  so.cond(so.lock),
		clock: so.clock,
		count: initial,
	}

	return s, nil
}

func (s *Semaphore) Release() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.count == math.MaxInt {
		panic(fmt.Errorf("%w: release would overflow the count", ErrResourceCorruption))
	}

	s.count++
	s.cond.Signal()
}

func (s *Semaphore) available() bool {
	return s.count > 0
}

func (s *Semaphore) Acquire() {
	s.lock.Lock()
	defer s.lock.Unlock()

	waitFor(s.cond, s.available)
	s.count--
}

func (s *Semaphore) TryAcquire() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.count > 0 {
		s.count--
		return true
	}

	return false
}

// AcquireFor fixes its deadline on entry using the semaphore's clock.  Each retry after a wake
// waits only for the time left until that deadline.  A nonpositive duration never suspends.
func (s *Semaphore) AcquireFor(d time.Duration) bool {
	return s.AcquireUntil(s.clock.Now().Add(d))
}

// AcquireUntil compares the deadline with the semaphore's clock after every wake.  The deadline
// chooses the time base.  A deadline carrying a monotonic reading, such as one derived from
// time.Now or clock.System, is compared monotonically.  A deadline without one, such as one
// from time.Date or clock.Wall, is compared on the wall clock.
func (s *Semaphore) AcquireUntil(deadline time.Time) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if waitUntil(s.cond, s.clock, deadline, s.available) {
		s.count--
		return true
	}

	return false
}

// Available returns the number of permits that could be acquired right now.  The value may be
// stale by the time the caller inspects it.
func (s *Semaphore) Available() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.count
}

// NativeHandle exposes the synchronization object underneath the semaphore's Cond, e.g. the
// *sync.Cond when NewSyncCond is in use.  Use at your own risk: signaling or waiting on the
// handle directly bypasses the semaphore's invariants.
func (s *Semaphore) NativeHandle() interface{} {
	return s.cond.NativeHandle()
}

// String returns a human-readable representation of the semaphore's state.
func (s *Semaphore) String() string {
	return fmt.Sprintf("Semaphore(available=%d)", s.Available())
}
