// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueDrainEmpty(t *testing.T) {
	q := New(8)
	require.Nil(t, q.Drain())
}

func TestQueueFIFOPerProducer(t *testing.T) {
	q := New(8)
	for i := 0; i < 5; i++ {
		q.Enqueue(Change{DeviceID: 1, ButtonID: int32(i)})
	}
	got := q.Drain()
	require.Len(t, got, 5)
	for i, c := range got {
		require.Equal(t, int32(i), c.ButtonID)
	}
	require.Nil(t, q.Drain())
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := New(4)
	for i := 0; i < 6; i++ {
		q.Enqueue(Change{ButtonID: int32(i)})
	}
	got := q.Drain()
	require.Len(t, got, 4)
	require.Equal(t, int32(2), got[0].ButtonID)
	require.Equal(t, int32(5), got[3].ButtonID)
}

// TestQueueConcurrentProducersPreserveOwnOrder feeds each goroutine its own
// monotonically increasing ButtonID sequence tagged by DeviceID, and checks
// that after draining, each device's sequence is still strictly increasing
// even though producers interleave.
func TestQueueConcurrentProducersPreserveOwnOrder(t *testing.T) {
	q := New(1024)
	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(id uint32) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(Change{DeviceID: id, ButtonID: int32(i)})
			}
		}(uint32(p))
	}
	wg.Wait()

	got := q.Drain()
	last := make(map[uint32]int32, producers)
	for _, c := range got {
		if prev, ok := last[c.DeviceID]; ok {
			require.Greater(t, c.ButtonID, prev)
		}
		last[c.DeviceID] = c.ButtonID
	}
}

func TestQueueDrainIdempotentOnQuiescentProducer(t *testing.T) {
	q := New(8)
	q.Enqueue(Change{ButtonID: 1})
	first := q.Drain()
	require.Len(t, first, 1)
	require.Nil(t, q.Drain())
	require.Nil(t, q.Drain())
}
