// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestEncodeDuration10msInvariant10 checks invariant #10 literally:
// 2550ms encodes to (255,0); 26000ms encodes to (10,255).
func TestEncodeDuration10msInvariant10(t *testing.T) {
	dur, loops := EncodeDuration10ms(2550)
	require.Equal(t, byte(255), dur)
	require.Equal(t, byte(0), loops)

	dur, loops = EncodeDuration10ms(26000)
	require.Equal(t, byte(10), dur)
	require.Equal(t, byte(255), loops)
}

func TestXboxOneBTReportLayout(t *testing.T) {
	r := XboxOneBTReport(1, 0.5, 2550)
	require.Equal(t, byte(0x03), r[0])
	require.Equal(t, byte(0x0F), r[1])
	require.Equal(t, byte(0), r[2])
	require.Equal(t, byte(0), r[3])
	require.Equal(t, byte(255), r[4]) // left scaled to full byte
	require.Equal(t, byte(255), r[6]) // duration10ms
	require.Equal(t, byte(0), r[8])   // loop_count
}

func TestPS4LEDReportLayout(t *testing.T) {
	r := PS4LEDReport(1, 0.5, 10, 20, 30)
	require.Equal(t, byte(0x05), r[0])
	require.Equal(t, byte(0xFF), r[1])
	require.Equal(t, byte(127), r[4]) // right
	require.Equal(t, byte(255), r[5]) // left
	require.Equal(t, byte(10), r[6])
	require.Equal(t, byte(20), r[7])
	require.Equal(t, byte(30), r[8])
}

type fakeHID struct {
	mu      sync.Mutex
	reports [][]byte
}

func (h *fakeHID) WriteOutputReport(report []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := make([]byte, len(report))
	copy(cp, report)
	h.reports = append(h.reports, cp)
	return nil
}

func (h *fakeHID) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.reports)
}

func TestRumbleWorkerDrainsQueueAndWritesReport(t *testing.T) {
	w := NewRumbleWorker(4, zerolog.Nop())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); w.Run() }()

	hid := &fakeHID{}
	done := make(chan struct{})
	go func() {
		for hid.count() == 0 {
		}
		close(done)
	}()
	w.Enqueue(RumbleEffect{Left: 1, Right: 1, DurationMS: 10, Handle: hid})
	<-done

	w.Stop()
	wg.Wait()

	require.GreaterOrEqual(t, hid.count(), 1)
}

func TestRumbleWorkerDropsOnFullQueue(t *testing.T) {
	w := NewRumbleWorker(1, zerolog.Nop())
	w.queue = []rumbleJob{{}} // simulate a full backlog without a running worker
	w.Enqueue(RumbleEffect{})
	require.Len(t, w.queue, 1)
}
