// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputStateGetSetBool(t *testing.T) {
	s := NewInputState(4, 2)
	require.False(t, s.GetBool(1))
	s.SetBool(1, true)
	require.True(t, s.GetBool(1))
}

func TestInputStateOutOfRangeIsZeroValue(t *testing.T) {
	s := NewInputState(2, 2)
	require.False(t, s.GetBool(99))
	require.Equal(t, float32(0), s.GetFloat(-1))
	s.SetBool(99, true)  // must not panic
	s.SetFloat(-1, 1)    // must not panic
}

func TestInputStateCopyFromAndClear(t *testing.T) {
	a := NewInputState(2, 2)
	a.SetBool(0, true)
	a.SetFloat(1, 0.5)

	b := NewInputState(2, 2)
	b.CopyFrom(a)
	require.True(t, b.GetBool(0))
	require.Equal(t, float32(0.5), b.GetFloat(1))

	b.Clear()
	require.False(t, b.GetBool(0))
	require.Equal(t, float32(0), b.GetFloat(1))
	require.True(t, a.GetBool(0), "clearing one state must not affect another")
}
