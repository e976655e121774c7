// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/stretchr/testify/require"
)

func TestPadStartsUnavailable(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, nil)
	require.Equal(t, gainput.DeviceStateUnavailable, p.State())
	require.Equal(t, gainput.DeviceTypePad, p.DeviceType())
}

// TestPadBindMintsIDAndFiresOnBind is scenario S4's bind half: a pad
// transitions to OK only once Bind is called, and the manager hook fires
// exactly once.
func TestPadBindMintsIDAndFiresOnBind(t *testing.T) {
	var firedWith *Pad
	fires := 0
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) {
		fires++
		firedWith = bound
		bound.SetID(42)
	})

	p.Bind(DefaultDialect(), nil)

	require.Equal(t, gainput.DeviceStateOK, p.State())
	require.Equal(t, 1, fires)
	require.Same(t, p, firedWith)
	require.Equal(t, gainput.DeviceID(42), p.DeviceID())
}

func TestPadUnbindResetsToUnavailable(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	p.Bind(DefaultDialect(), nil)
	p.Unbind()
	require.Equal(t, gainput.DeviceStateUnavailable, p.State())
	require.Equal(t, gainput.InvalidDeviceID, p.DeviceID())
}

func TestPadHandleButtonBoolThenUpdateCommits(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	p.Bind(DefaultDialect(), nil)

	ds := gainput.NewDeltaState()
	p.HandleButtonBool(gainput.DeviceButtonID(ButtonA), true, ds)
	require.False(t, p.GetBool(gainput.DeviceButtonID(ButtonA)), "must not be visible before Update commits it")

	p.Update(ds)
	require.True(t, p.GetBool(gainput.DeviceButtonID(ButtonA)))
}

func TestPadHandleStickPairAppliesDeadzoneAtomically(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	p.Bind(DefaultDialect(), nil)

	ds := gainput.NewDeltaState()
	p.HandleStickPair(gainput.DeviceButtonID(AxisLeftStickX), gainput.DeviceButtonID(AxisLeftStickY), 0.1, 0.05, ds)
	p.Update(ds)

	require.Equal(t, float32(0), p.GetFloat(gainput.DeviceButtonID(AxisLeftStickX)))
	require.Equal(t, float32(0), p.GetFloat(gainput.DeviceButtonID(AxisLeftStickY)))
}

func TestPadVibrateWithoutRumbleIsNoop(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	p.Vibrate(1, 1) // must not panic with no rumble worker attached
}

func TestPadSetRumbleEffectErrorsWithoutHID(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	err := p.SetRumbleEffect(1, 1, 100)
	require.Error(t, err)
}

func TestPadAnyButtonDown(t *testing.T) {
	p := NewPad(0, gainput.VariantPadDirectInput, 0.15, func(bound *Pad) { bound.SetID(1) })
	p.Bind(DefaultDialect(), nil)
	ds := gainput.NewDeltaState()
	p.HandleButtonBool(gainput.DeviceButtonID(ButtonA), true, ds)
	p.HandleButtonBool(gainput.DeviceButtonID(ButtonStart), true, ds)
	p.Update(ds)

	out := make([]gainput.DeviceButtonID, 8)
	n := p.AnyButtonDown(out)
	require.Equal(t, 2, n)
}
