// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package mouse

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/stretchr/testify/require"
)

func TestApplyPacketButtonsAndDelta(t *testing.T) {
	m := NewMouse(0, gainput.VariantRaw, true)
	b := &LinuxBackend{mouse: m, fd: -1}
	ds := gainput.NewDeltaState()

	// left+middle down, dx=+10, dy=-5 (sign bit clear on both: positive
	// x, and the wire's +5 "up" becomes -5 after negation).
	b.applyPacket([]byte{packetLeft | packetMiddle, 10, 5}, ds)
	m.Update(ds)

	require.True(t, m.GetBool(gainput.DeviceButtonID(ButtonLeft)))
	require.True(t, m.GetBool(gainput.DeviceButtonID(ButtonMiddle)))
	require.False(t, m.GetBool(gainput.DeviceButtonID(ButtonRight)))
	require.Equal(t, float32(10), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(-5), m.GetFloat(gainput.DeviceButtonID(AxisY)))
}

func TestApplyPacketNegativeDeltaSign(t *testing.T) {
	m := NewMouse(0, gainput.VariantRaw, true)
	b := &LinuxBackend{mouse: m, fd: -1}
	ds := gainput.NewDeltaState()

	b.applyPacket([]byte{packetXSign | packetYSign, 256 - 3, 256 - 7}, ds)
	m.Update(ds)

	require.Equal(t, float32(-3), m.GetFloat(gainput.DeviceButtonID(AxisX)))
	require.Equal(t, float32(7), m.GetFloat(gainput.DeviceButtonID(AxisY)))
}
