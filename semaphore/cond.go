// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"sync"
	"time"
)

// Cond is the condition-wait half of a semaphore backend.  A Cond is bound to the sync.Locker
// it was created with, and every method must be called while holding that lock.
//
// Implementations may wake a waiter spuriously.  Callers always recheck their predicate.
type Cond interface {
	// Wait atomically unlocks the bound lock and suspends the calling goroutine.  The lock is
	// reacquired before Wait returns.
	Wait()

	// WaitTimer behaves as Wait, but also returns once the given channel fires.  The return value
	// is false when the wake was caused by the channel and true otherwise.
	WaitTimer(<-chan time.Time) bool

	// Signal wakes at most one goroutine suspended in Wait or WaitTimer.
	Signal()

	// NativeHandle returns the underlying synchronization object.  The value is opaque and
	// implementation specific.
	NativeHandle() interface{}
}

// CondFactory creates a Cond bound to a lock
type CondFactory func(sync.Locker) Cond

// chanCond parks each waiter on its own channel.  Waiters are queued while the lock is held,
// which is what makes unlocking and parking atomic with respect to Signal.
type chanCond struct {
	l sync.Locker

	// GUARDED_BY(l)
	waiters []chan struct{}
}

// NewChanCond returns the default Cond, which wakes waiters in the order they suspended.
// Its NativeHandle is the Cond itself.
func NewChanCond(l sync.Locker) Cond {
	return &chanCond{l: l}
}

func (cc *chanCond) enqueue() chan struct{} {
	w := make(chan struct{})
	cc.waiters = append(cc.waiters, w)
	return w
}

func (cc *chanCond) remove(w chan struct{}) {
	for i, e := range cc.waiters {
		if e == w {
			cc.waiters = append(cc.waiters[:i], cc.waiters[i+1:]...)
			return
		}
	}
}

func (cc *chanCond) Wait() {
	w := cc.enqueue()
	cc.l.Unlock()
	<-w
	cc.l.Lock()
}

func (cc *chanCond) WaitTimer(t <-chan time.Time) bool {
	w := cc.enqueue()
	cc.l.Unlock()

	select {
	case <-w:
		cc.l.Lock()
		return true

	case <-t:
		cc.l.Lock()

		// a Signal may have dequeued this waiter while the lock was being reacquired
		select {
		case <-w:
			return true
		default:
			cc.remove(w)
			return false
		}
	}
}

func (cc *chanCond) Signal() {
	if len(cc.waiters) > 0 {
		w := cc.waiters[0]
		cc.waiters[0] = nil
		cc.waiters = cc.waiters[1:]
		close(w)
	}
}

func (cc *chanCond) NativeHandle() interface{} {
	return cc
}

// syncCond adapts sync.Cond.  sync.Cond has no timed wait, so WaitTimer broadcasts from a
// helper goroutine when the timer fires.
type syncCond struct {
	c *sync.Cond
}

// NewSyncCond returns a Cond backed by a sync.Cond.  Its NativeHandle is the *sync.Cond.
func NewSyncCond(l sync.Locker) Cond {
	return &syncCond{c: sync.NewCond(l)}
}

func (sc *syncCond) Wait() {
	sc.c.Wait()
}

func (sc *syncCond) WaitTimer(t <-chan time.Time) bool {
	var (
		done = make(chan struct{})

		// GUARDED_BY(sc.c.L)
		fired bool
	)

	go func() {
		select {
		case <-t:
			// taking the lock orders this broadcast after the waiter has been added
			// to the notify list by Wait
			sc.c.L.Lock()
			fired = true
			sc.c.Broadcast()
			sc.c.L.Unlock()

		case <-done:
		}
	}()

	sc.c.Wait()
	close(done)
	return !fired
}

func (sc *syncCond) Signal() {
	sc.c.Signal()
}

func (sc *syncCond) NativeHandle() interface{} {
	return sc.c
}
