// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package container

import "encoding/binary"

// invalidIndex is the chain-terminator / empty-bucket sentinel, mirroring
// the original's unsigned(-1) InvalidKey constant.
const invalidIndex = ^uint32(0)

// Key is the set of id-like integer types the input core hashes on:
// DeviceId, ListenerId, ModifierId and friends are all small integers.
type Key interface {
	~int | ~int32 | ~uint32 | ~uint64
}

// node is one slot of the dense values array. next threads a collision
// chain through the array by index rather than by pointer, so the whole
// table can be a single contiguous slice.
type node[K Key, V any] struct {
	key   K
	value V
	next  uint32
}

// HashMap is an open-addressed map with a MurmurHash3-seeded bucket array
// and separate chaining threaded through node.next indices into a dense
// values slice. Iteration order follows insertion order, which the
// listener re-sort and GetAnyButtonDown scans both rely on being stable.
//
// Ported from GainputContainers.h's HashMap<K,V>: same seed, same 0.6 load
// factor, same swap-with-last erase compaction.
type HashMap[K Key, V any] struct {
	buckets []uint32
	values  []node[K, V]
}

// seed is the library-wide MurmurHash3 seed constant.
const seed = 329856235

func hashKey[K Key](k K) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return MurmurHash3_x86_32(buf[:], seed)
}

// NewHashMap returns an empty map. The bucket array grows lazily on first
// insert, matching the original's empty-table fast path in Find.
func NewHashMap[K Key, V any]() *HashMap[K, V] {
	return &HashMap[K, V]{}
}

// Len returns the number of live entries.
func (m *HashMap[K, V]) Len() int { return len(m.values) }

// Empty reports whether the map holds no entries.
func (m *HashMap[K, V]) Empty() bool { return len(m.values) == 0 }

// Get returns the value for k and whether it was present.
func (m *HashMap[K, V]) Get(k K) (V, bool) {
	if idx, ok := m.find(k); ok {
		return m.values[idx].value, true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *HashMap[K, V]) Has(k K) bool {
	_, ok := m.find(k)
	return ok
}

func (m *HashMap[K, V]) find(k K) (uint32, bool) {
	if len(m.buckets) == 0 || len(m.values) == 0 {
		return 0, false
	}
	ha := hashKey(k) % uint32(len(m.buckets))
	vi := m.buckets[ha]
	for vi != invalidIndex {
		if m.values[vi].key == k {
			return vi, true
		}
		vi = m.values[vi].next
	}
	return 0, false
}

// Set inserts or overwrites the value for k.
func (m *HashMap[K, V]) Set(k K, v V) {
	if idx, ok := m.find(k); ok {
		m.values[idx].value = v
		return
	}
	if float64(len(m.values)+1) >= 0.6*float64(len(m.buckets)) {
		m.rehash(len(m.values)*2 + 10)
	}

	ha := hashKey(k) % uint32(len(m.buckets))
	vi := m.buckets[ha]
	if vi == invalidIndex {
		m.buckets[ha] = uint32(len(m.values))
	} else {
		for {
			if m.values[vi].next == invalidIndex {
				m.values[vi].next = uint32(len(m.values))
				break
			}
			vi = m.values[vi].next
		}
	}
	m.values = append(m.values, node[K, V]{key: k, value: v, next: invalidIndex})
}

// Delete removes k, reporting whether it was present. Deletion compacts
// the dense values slice by swapping the last element into the removed
// slot and patching exactly one dangling back-pointer, either in the
// bucket array or in a next-chain — the layout the original relies on.
func (m *HashMap[K, V]) Delete(k K) bool {
	if len(m.buckets) == 0 {
		return false
	}
	ha := hashKey(k) % uint32(len(m.buckets))
	vi := m.buckets[ha]
	prevVi := invalidIndex
	for vi != invalidIndex {
		if m.values[vi].key == k {
			if prevVi == invalidIndex {
				m.buckets[ha] = m.values[vi].next
			} else {
				m.values[prevVi].next = m.values[vi].next
			}

			last := uint32(len(m.values) - 1)
			if vi == last {
				m.values = m.values[:last]
				return true
			}

			m.values[vi] = m.values[last]
			m.values = m.values[:last]

			for i := range m.buckets {
				if m.buckets[i] == last {
					m.buckets[i] = vi
					break
				}
			}
			for i := range m.values {
				if m.values[i].next == last {
					m.values[i].next = vi
					break
				}
			}
			return true
		}
		prevVi = vi
		vi = m.values[vi].next
	}
	return false
}

// Clear empties the map. The original's HashMap::clear() forgets to reset
// its size counter, leaving Len() wrong until the next insert; this version
// drops both slices outright so size is always consistent.
func (m *HashMap[K, V]) Clear() {
	m.buckets = nil
	m.values = nil
}

// Each calls fn for every entry in insertion order. fn must not mutate the
// map.
func (m *HashMap[K, V]) Each(fn func(k K, v V)) {
	for _, n := range m.values {
		fn(n.key, n.value)
	}
}

// Values returns a copy of the stored values in insertion order. The
// returned slice is freshly allocated and does not alias internal storage.
func (m *HashMap[K, V]) Values() []V {
	out := make([]V, len(m.values))
	for i, n := range m.values {
		out[i] = n.value
	}
	return out
}

func (m *HashMap[K, V]) rehash(newSize int) {
	if newSize < 1 {
		newSize = 1
	}
	old := m.values
	m.buckets = make([]uint32, newSize)
	for i := range m.buckets {
		m.buckets[i] = invalidIndex
	}
	m.values = m.values[:0]
	for _, n := range old {
		m.Set(n.key, n.value)
	}
}
