// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package mouse

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/stretchr/testify/require"
)

func TestButtonNameRoundTrip(t *testing.T) {
	name := ButtonName(ButtonLeft)
	require.Equal(t, "mouse_left", name)
	b, ok := ButtonByName(name)
	require.True(t, ok)
	require.Equal(t, ButtonLeft, b)
}

func TestIsAxis(t *testing.T) {
	require.False(t, IsAxis(ButtonLeft))
	require.True(t, IsAxis(AxisX))
	require.True(t, IsAxis(AxisWheelAccum))
}

// TestMouseWheelAutoReleaseScenario is scenario S2: one wheel notch is
// observed as a single false->true->false pulse spanning exactly two
// ticks, with no event on the second tick.
func TestMouseWheelAutoReleaseScenario(t *testing.T) {
	m := NewMouse(0, gainput.VariantStandard, true)
	m.SetID(1)
	ds := gainput.NewDeltaState()

	m.HandleButtonBool(gainput.DeviceButtonID(ButtonWheelUp), true, ds)
	require.False(t, m.GetBool(gainput.DeviceButtonID(ButtonWheelUp)), "not committed until Update")
	m.Update(ds)
	require.True(t, m.GetBool(gainput.DeviceButtonID(ButtonWheelUp)))

	m.Update(ds) // no new event this tick
	require.False(t, m.GetBool(gainput.DeviceButtonID(ButtonWheelUp)))
}

func TestMouseWheelReleaseDoesNotFireWithoutPriorTick(t *testing.T) {
	m := NewMouse(0, gainput.VariantStandard, true)
	ds := gainput.NewDeltaState()
	m.Update(ds)
	require.False(t, m.GetBool(gainput.DeviceButtonID(ButtonWheelUp)))
}

func TestMouseStandardPositionIsAbsolute(t *testing.T) {
	m := NewMouse(0, gainput.VariantStandard, true)
	ds := gainput.NewDeltaState()
	m.HandlePosition(100, 200, ds)
	m.Update(ds)
	require.Equal(t, float32(100), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(200), m.GetFloat(gainput.DeviceButtonID(AxisY)))
}

func TestMouseRawAccumulatesThenResets(t *testing.T) {
	m := NewMouse(0, gainput.VariantRaw, true)
	ds := gainput.NewDeltaState()
	m.HandleRelativeDelta(3, -1, ds)
	m.HandleRelativeDelta(2, 4, ds)
	m.Update(ds)
	require.Equal(t, float32(5), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(3), m.GetFloat(gainput.DeviceButtonID(AxisY)))

	m.Update(ds) // no new motion this tick
	require.Equal(t, float32(0), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(0), m.GetFloat(gainput.DeviceButtonID(AxisY)))
}

func TestMouseWarpSuppressesSpuriousAbsoluteDelta(t *testing.T) {
	m := NewMouse(0, gainput.VariantRaw, true)
	ds := gainput.NewDeltaState()
	m.HandleAbsoluteReport(500, 500, ds) // establish baseline
	m.Update(ds)

	m.Warp(800, 800)
	m.HandleAbsoluteReport(801, 799, ds) // one pixel of real motion after the warp
	m.Update(ds)
	require.Equal(t, float32(1), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(-1), m.GetFloat(gainput.DeviceButtonID(AxisY)))
}

func TestMouseClearAllStates(t *testing.T) {
	m := NewMouse(0, gainput.VariantStandard, true)
	ds := gainput.NewDeltaState()
	m.HandleButtonBool(gainput.DeviceButtonID(ButtonLeft), true, ds)
	m.Update(ds)
	require.True(t, m.GetBool(gainput.DeviceButtonID(ButtonLeft)))

	m.ClearAllStates()
	require.False(t, m.GetBool(gainput.DeviceButtonID(ButtonLeft)))
}

func TestMouseDeviceType(t *testing.T) {
	m := NewMouse(0, gainput.VariantStandard, true)
	require.Equal(t, gainput.DeviceTypeMouse, m.DeviceType())
	require.Equal(t, gainput.DeviceStateOK, m.State())
}
