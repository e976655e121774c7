// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package container

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// Golden vector: the hash of the little-endian 4-byte key 0xDEADBEEF,
// seeded with the library constant, must equal this value on every
// platform, matching the reference C implementation bit-for-bit.
func TestMurmurHash3GoldenVector(t *testing.T) {
	key := make([]byte, 4)
	binary.LittleEndian.PutUint32(key, 0xDEADBEEF)
	h := MurmurHash3_x86_32(key, 329856235)
	require.Equal(t, uint32(0x3c514edc), h)
}

func TestMurmurHash3EmptyKey(t *testing.T) {
	h := MurmurHash3_x86_32(nil, 0)
	require.Equal(t, fmix32(0), h)
}

func TestMurmurHash3Deterministic(t *testing.T) {
	key := []byte("leftx")
	a := MurmurHash3_x86_32(key, 329856235)
	b := MurmurHash3_x86_32(key, 329856235)
	require.Equal(t, a, b)
}
