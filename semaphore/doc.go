// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a counting semaphore built from a lock and a condition.

A Semaphore tracks a non-negative count of permits.  Release adds a permit and wakes one
waiter, Acquire takes a permit and blocks while none are available, TryAcquire never blocks,
and AcquireFor and AcquireUntil bound the wait by a timeout or a deadline.  A timeout is an
ordinary false result, not an error.

The lock and the condition are pluggable through WithLocker and WithCond, so instrumented or
platform-specific backends can be used without touching the semaphore logic.  Two conditions
ship with this package: NewChanCond (the default) and NewSyncCond.

Instrument decorates any Interface with go-kit metrics and zap logging.  Config, FromViper,
and Provide build semaphores from viper configuration and uber/fx containers.
*/
package semaphore
