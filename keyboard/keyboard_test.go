// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package keyboard

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/stretchr/testify/require"
)

func TestKeyNameRoundTrip(t *testing.T) {
	name := KeyName(KeyA)
	require.Equal(t, "KeyA", name)
	k, ok := KeyByName(name)
	require.True(t, ok)
	require.Equal(t, KeyA, k)
}

func TestKeyByNameMissReturnsFalse(t *testing.T) {
	_, ok := KeyByName("KeyDoesNotExist")
	require.False(t, ok)
}

// TestKeyboardTextInputScenario is scenario S1: text accumulated before
// Update is visible, and is cleared once Update commits the tick.
func TestKeyboardTextInputScenario(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	kb.SetID(1)
	ds := gainput.NewDeltaState()

	kb.HandleKey(KeyH, true, ds)
	kb.HandleText('H')
	kb.HandleKey(KeyI, true, ds)
	kb.HandleText('i')

	require.Equal(t, "Hi", kb.GetTextInput())
	require.False(t, kb.GetBool(gainput.DeviceButtonID(KeyH)), "state not committed until Update")

	kb.Update(ds)

	require.Equal(t, "", kb.GetTextInput())
	require.True(t, kb.GetBool(gainput.DeviceButtonID(KeyH)))
	require.True(t, kb.GetBool(gainput.DeviceButtonID(KeyI)))
}

func TestKeyboardTextInputOverflowTruncatesSilently(t *testing.T) {
	kb := NewKeyboard(0, 2, true)
	kb.HandleText('a')
	kb.HandleText('b')
	kb.HandleText('c') // dropped, queue already at cap
	require.Equal(t, "ab", kb.GetTextInput())
}

func TestKeyboardTextInputDisabled(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	kb.SetTextInputEnabled(false)
	kb.HandleText('x')
	require.Equal(t, "", kb.GetTextInput())
}

func TestKeyboardAnyButtonDown(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	ds := gainput.NewDeltaState()
	kb.HandleKey(KeyA, true, ds)
	kb.HandleKey(KeySpace, true, ds)
	kb.Update(ds)

	out := make([]gainput.DeviceButtonID, 4)
	n := kb.AnyButtonDown(out)
	require.Equal(t, 2, n)
}

func TestKeyboardClearAllStates(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	ds := gainput.NewDeltaState()
	kb.HandleKey(KeyA, true, ds)
	kb.Update(ds)
	require.True(t, kb.GetBool(gainput.DeviceButtonID(KeyA)))

	kb.ClearAllStates()
	require.False(t, kb.GetBool(gainput.DeviceButtonID(KeyA)))
}

func TestKeyboardDeviceType(t *testing.T) {
	kb := NewKeyboard(0, 16, true)
	require.Equal(t, gainput.DeviceTypeKeyboard, kb.DeviceType())
	require.Equal(t, gainput.DeviceStateOK, kb.State())
	require.False(t, kb.IsLateUpdate())
}
