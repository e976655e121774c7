// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClockAdvanceAccumulatesMicroseconds(t *testing.T) {
	var c clock
	c.Advance(0.016)
	require.InDelta(t, uint64(16000), c.Now(), 1000)
}

// TestClockAdvanceNoLongRunDrift checks that repeatedly advancing by a
// delta with a fractional-millisecond remainder (1ms/3) never loses time:
// the sum of whole-millisecond steps taken converges to the true elapsed
// time instead of always rounding down.
func TestClockAdvanceNoLongRunDrift(t *testing.T) {
	var c clock
	const step = 1.0 / 3000.0 // 1/3 ms per step
	const steps = 3000        // 1 second total
	for i := 0; i < steps; i++ {
		c.Advance(step)
	}
	require.InDelta(t, uint64(1_000_000), c.Now(), 1000)
}
