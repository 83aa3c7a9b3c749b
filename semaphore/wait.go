// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"time"

	"github.com/xmidt-org/semaphore/clock"
)

// waitFor suspends on c until pred holds.  The predicate, not the wake, decides.
// The caller holds the lock c is bound to.
func waitFor(c Cond, pred func() bool) {
	for !pred() {
		c.Wait()
	}
}

// waitUntil suspends on c until pred holds or the deadline passes on clk, returning the final
// value of pred.  Each round waits only for the time remaining until the deadline.
func waitUntil(c Cond, clk clock.Interface, deadline time.Time, pred func() bool) bool {
	for !pred() {
		remaining := deadline.Sub(clk.Now())
		if remaining <= 0 {
			return false
		}

		t := clk.NewTimer(remaining)
		c.WaitTimer(t.C())
		t.Stop()
	}

	return true
}
