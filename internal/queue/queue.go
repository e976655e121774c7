// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package queue implements the multi-producer / single-consumer handoff
// between platform event threads (or the HID/rumble worker) and the
// manager's single-threaded update tick.
//
// Change deliberately carries only ids, not device/state pointers: the
// consumer re-resolves the device from its own registry on drain, which
// keeps this package free of any dependency on the root package and
// avoids sharing live pointers across goroutines.
package queue

import "sync"

// Change is one queued button or axis write, produced on any goroutine and
// applied on the manager's update thread.
type Change struct {
	DeviceID   uint32
	ButtonID   int32
	IsFloat    bool
	BoolValue  bool
	FloatValue float32
}

// Queue is a bounded MPSC queue with write-wins overflow: once full, the
// oldest unconsumed change is dropped in favor of the newest, matching the
// RingBuffer semantics the core is built on. There is no ordering
// guarantee between changes from different producers, only within one.
//
// A single mutex guards the ring buffer. Contention is not a concern here:
// producers are platform event callbacks and one rumble worker, firing at
// human-input and HID-polling rates, not a hot path.
type Queue struct {
	mu   sync.Mutex
	buf  []Change
	next int
	size int
}

// New returns a Queue that retains at most capacity pending changes.
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]Change, capacity)}
}

// Enqueue adds c, establishing a happens-before relationship with the next
// Drain call on the consumer side.
func (q *Queue) Enqueue(c Change) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := (q.next + q.size) % len(q.buf)
	q.buf[idx] = c
	if q.size < len(q.buf) {
		q.size++
	} else {
		// full: overwrite the oldest entry and advance the read head.
		q.next = (q.next + 1) % len(q.buf)
	}
}

// Drain removes and returns every change currently queued, in FIFO order
// per producer. Safe to call concurrently with Enqueue; a producer racing
// the drain either lands in this batch or the next one.
func (q *Queue) Drain() []Change {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return nil
	}
	out := make([]Change, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.buf[(q.next+i)%len(q.buf)]
	}
	q.next = 0
	q.size = 0
	return out
}
