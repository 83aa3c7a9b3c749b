// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package clock abstracts the time source used by timed acquisitions.

System instants carry the monotonic reading of the time package, Wall instants do not.
Which clock produced a deadline therefore decides whether that deadline is compared
monotonically or on the wall clock.
*/
package clock
