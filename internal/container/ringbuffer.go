// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package container

// RingBuffer is a fixed-capacity FIFO with write-wins overflow: once the
// writer has lapped the reader by more than N items, the reader is
// advanced so only the newest N items are ever retained. Ported from
// GainputContainers.h's RingBuffer<N, T>.
type RingBuffer[T any] struct {
	buf       []T
	nextRead  uint64
	nextWrite uint64
}

// NewRingBuffer returns a ring buffer holding at most capacity items.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

// CanGet reports whether Get would return an unread item.
func (r *RingBuffer[T]) CanGet() bool { return r.nextRead < r.nextWrite }

// Count returns the number of retained items, clamped to the capacity.
func (r *RingBuffer[T]) Count() int {
	n := uint64(len(r.buf))
	d := r.nextWrite - r.nextRead
	if d > n {
		return int(n)
	}
	return int(d)
}

// Get dequeues the oldest retained item. Callers must check CanGet first;
// Get on an empty buffer returns the zero value.
func (r *RingBuffer[T]) Get() T {
	if !r.CanGet() {
		var zero T
		return zero
	}
	v := r.buf[r.nextRead%uint64(len(r.buf))]
	r.nextRead++
	return v
}

// Put enqueues d, overwriting the oldest item once the buffer is full.
func (r *RingBuffer[T]) Put(d T) {
	r.buf[r.nextWrite%uint64(len(r.buf))] = d
	r.nextWrite++
	n := uint64(len(r.buf))
	for r.nextRead+n < r.nextWrite {
		r.nextRead++
	}
}
