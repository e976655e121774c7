// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferBasic(t *testing.T) {
	r := NewRingBuffer[int](4)
	require.False(t, r.CanGet())
	r.Put(1)
	r.Put(2)
	require.Equal(t, 2, r.Count())
	require.Equal(t, 1, r.Get())
	require.Equal(t, 2, r.Get())
	require.False(t, r.CanGet())
}

// TestRingBufferOverflowRetainsNewest checks that after N+K writes (K>0)
// without reads, count == N and the retained items are exactly the last N
// written.
func TestRingBufferOverflowRetainsNewest(t *testing.T) {
	const n = 5
	r := NewRingBuffer[int](n)
	const k = 3
	for i := 0; i < n+k; i++ {
		r.Put(i)
	}
	require.Equal(t, n, r.Count())
	for i := 0; i < n; i++ {
		require.True(t, r.CanGet())
		require.Equal(t, k+i, r.Get())
	}
	require.False(t, r.CanGet())
}
