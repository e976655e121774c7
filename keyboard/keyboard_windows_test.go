// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build windows

package keyboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateVKDistinguishesShiftByScanCode(t *testing.T) {
	left, ok := translateVK(vkShift, 0x2A, false)
	require.True(t, ok)
	require.Equal(t, KeyLeftShift, left)

	right, ok := translateVK(vkShift, rightShiftScanCode, false)
	require.True(t, ok)
	require.Equal(t, KeyRightShift, right)
}

func TestTranslateVKDistinguishesControlByExtendedFlag(t *testing.T) {
	left, ok := translateVK(vkControl, 0x1D, false)
	require.True(t, ok)
	require.Equal(t, KeyLeftControl, left)

	right, ok := translateVK(vkControl, 0x1D, true)
	require.True(t, ok)
	require.Equal(t, KeyRightControl, right)
}

func TestTranslateVKLettersAndDigits(t *testing.T) {
	k, ok := translateVK(vkA, 0, false)
	require.True(t, ok)
	require.Equal(t, KeyA, k)

	k, ok = translateVK(vk0, 0, false)
	require.True(t, ok)
	require.Equal(t, Key0, k)
}

func TestUTF16DecoderHandlesSurrogatePair(t *testing.T) {
	var d utf16Decoder
	// U+1F600 GRINNING FACE = surrogate pair 0xD83D 0xDE00.
	_, ok := d.decode(0xD83D)
	require.False(t, ok)
	r, ok := d.decode(0xDE00)
	require.True(t, ok)
	require.Equal(t, rune(0x1F600), r)
}

func TestUTF16DecoderHandlesBMPCharDirectly(t *testing.T) {
	var d utf16Decoder
	r, ok := d.decode(uint16('H'))
	require.True(t, ok)
	require.Equal(t, 'H', r)
}
