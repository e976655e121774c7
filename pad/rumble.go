// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RumbleEffect is one queued haptics request: dual-motor intensities and
// a wall-clock duration after which the worker emits a stop packet.
type RumbleEffect struct {
	Left, Right float32
	DurationMS  uint32
	Handle      HIDHandle
}

// HIDHandle is the minimal capability the rumble worker needs from a
// bound controller: writing an output report to its HID/Bluetooth
// connection. Real back-ends (pad_hid.go, pad_windows.go) implement it
// over gousb or a platform HID handle; tests can fake it trivially.
type HIDHandle interface {
	WriteOutputReport(report []byte) error
}

// EncodeDuration10ms implements the worker's duration/loop-count
// encoding: if duration_ms/10 exceeds a byte, duration10ms becomes
// min((duration_ms/10)/255, 255) and loop_count is fixed at 255;
// otherwise duration10ms is exact and loop_count is 0.
func EncodeDuration10ms(durationMS uint32) (duration10ms byte, loopCount byte) {
	tenMs := durationMS / 10
	if tenMs > 255 {
		d := tenMs / 255
		if d > 255 {
			d = 255
		}
		return byte(d), 255
	}
	return byte(tenMs), 0
}

// XboxOneBTReport builds the 9-byte Xbox-One-Bluetooth rumble output
// report: {0x03,0x0F,0,0,left,right,dur10ms,0,loopcount}.
func XboxOneBTReport(left, right float32, durationMS uint32) [9]byte {
	dur, loops := EncodeDuration10ms(durationMS)
	return [9]byte{0x03, 0x0F, 0x00, 0x00, scaleByte(left), scaleByte(right), dur, 0x00, loops}
}

// PS4LEDReport builds the 32-byte PlayStation-family feedback report:
// header {0x05,0xFF,0,0,right,left,R,G,B,...} with the rest zero-padded.
func PS4LEDReport(left, right float32, r, g, b byte) [32]byte {
	var report [32]byte
	report[0] = 0x05
	report[1] = 0xFF
	report[4] = scaleByte(right)
	report[5] = scaleByte(left)
	report[6] = r
	report[7] = g
	report[8] = b
	return report
}

func scaleByte(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v * 255)
}

// rumbleJob is one entry in the worker's fixed-size effect queue.
type rumbleJob struct {
	effect  RumbleEffect
	expires time.Time
}

// RumbleWorker is the single long-lived thread the core spins up: a
// mutex + condition-variable-style queue (modeled here with
// sync.Cond, since Go has no native condvar-free primitive that blocks
// efficiently without one) draining a bounded effect queue and emitting
// one HID output report per effect as effects arrive, until told to
// quit. There is no fixed emission cadence: the worker sleeps while the
// queue is empty.
type RumbleWorker struct {
	log zerolog.Logger

	mu    sync.Mutex
	cond  *sync.Cond
	queue []rumbleJob
	quit  bool

	maxQueued int
}

// NewRumbleWorker returns a worker with room for maxQueued pending
// effects (MaxPadCount by convention — one outstanding effect per pad).
func NewRumbleWorker(maxQueued int, log zerolog.Logger) *RumbleWorker {
	w := &RumbleWorker{log: log, maxQueued: maxQueued}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Enqueue appends eff to the worker's queue and wakes it. If the queue is
// already at maxQueued, the effect is dropped (RumbleQueueFull) and
// logged — producers do not block.
func (w *RumbleWorker) Enqueue(eff RumbleEffect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quit {
		return
	}
	if len(w.queue) >= w.maxQueued {
		w.log.Warn().Msg("rumble queue full, dropping effect")
		return
	}
	w.queue = append(w.queue, rumbleJob{effect: eff, expires: time.Now().Add(time.Duration(eff.DurationMS) * time.Millisecond)})
	w.cond.Signal()
}

// Run blocks, draining queued effects and writing their HID reports,
// until Stop is called. It is meant to run on its own goroutine for the
// manager's lifetime.
func (w *RumbleWorker) Run() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		for len(w.queue) == 0 && !w.quit {
			w.cond.Wait()
		}
		if w.quit && len(w.queue) == 0 {
			return
		}
		jobs := w.queue
		w.queue = nil
		w.mu.Unlock()
		for _, j := range jobs {
			w.emit(j)
		}
		w.mu.Lock()
	}
}

func (w *RumbleWorker) emit(j rumbleJob) {
	if j.effect.Handle == nil {
		return
	}
	report := XboxOneBTReport(j.effect.Left, j.effect.Right, j.effect.DurationMS)
	if err := j.effect.Handle.WriteOutputReport(report[:]); err != nil {
		w.log.Warn().Err(err).Msg("HID rumble report write failed")
	}
	if j.effect.DurationMS > 0 && (j.effect.Left > 0 || j.effect.Right > 0) {
		// Expire by wall-clock: queue a stop packet once the effect's
		// deadline passes. Enqueue's quit check keeps a late timer from
		// reviving a stopped worker's queue.
		handle := j.effect.Handle
		time.AfterFunc(time.Until(j.expires), func() {
			w.Enqueue(RumbleEffect{Handle: handle})
		})
	}
}

// Stop sets the quit flag, wakes the worker, and discards any pending
// effects — matching the shutdown contract: no per-operation timeout, no
// attempt to flush. Callers that need Run's goroutine to have exited
// before proceeding should join it themselves (e.g. via a WaitGroup).
func (w *RumbleWorker) Stop() {
	w.mu.Lock()
	w.quit = true
	w.queue = nil
	w.mu.Unlock()
	w.cond.Broadcast()
}
