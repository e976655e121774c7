// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import "math"

// clock advances a monotonic microsecond counter by fractional-second
// ticks without accumulating drift: the millisecond remainder from one
// Advance call carries into the next instead of being truncated away.
type clock struct {
	currentTimeUs uint64
	remainderMs   float64
}

// Advance moves the clock forward by deltaSeconds and returns the new
// current_time_us.
func (c *clock) Advance(deltaSeconds float64) uint64 {
	total := deltaSeconds*1000.0 + c.remainderMs
	wholeMs := math.Floor(total)
	c.remainderMs = total - wholeMs
	c.currentTimeUs += uint64(wholeMs) * 1000
	return c.currentTimeUs
}

// Now returns the current microsecond counter without advancing it.
func (c *clock) Now() uint64 { return c.currentTimeUs }
