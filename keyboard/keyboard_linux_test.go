// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package keyboard

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/stretchr/testify/require"
)

func TestRuneForLettersRespectsShift(t *testing.T) {
	r, ok := runeFor(KeyA, false)
	require.True(t, ok)
	require.Equal(t, 'a', r)

	r, ok = runeFor(KeyA, true)
	require.True(t, ok)
	require.Equal(t, 'A', r)
}

func TestRuneForDigitsRespectsShift(t *testing.T) {
	r, ok := runeFor(Key1, false)
	require.True(t, ok)
	require.Equal(t, '1', r)

	r, ok = runeFor(Key1, true)
	require.True(t, ok)
	require.Equal(t, '!', r)
}

func TestRuneForNonPrintableMisses(t *testing.T) {
	_, ok := runeFor(KeyF1, false)
	require.False(t, ok)
}

func TestApplyEventIgnoresAutorepeat(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	b := &LinuxBackend{kb: kb}
	ds := gainput.NewDeltaState()
	b.applyEvent(inputEvent{typ: evKey, code: 30, value: 2}, ds) // KEY_A autorepeat

	out := make([]gainput.DeviceButtonID, 4)
	kb.Update(ds)
	require.Equal(t, 0, kb.AnyButtonDown(out))
}

func TestApplyEventTracksShiftForTextQueue(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	b := &LinuxBackend{kb: kb}
	ds := gainput.NewDeltaState()

	b.applyEvent(inputEvent{typ: evKey, code: 42, value: 1}, ds) // KEY_LEFTSHIFT down
	b.applyEvent(inputEvent{typ: evKey, code: 30, value: 1}, ds) // KEY_A down

	require.Equal(t, "A", kb.GetTextInput())
}
