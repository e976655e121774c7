// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package touch implements the touch-surface device back-end: up to
// MaxTouchPoints independently tracked contacts, each exposing a Down
// bool and X/Y/Pressure float axes in the canonical button/axis space,
// fed from the Android and iOS multi-touch event bridges.
package touch

import (
	"fmt"

	"github.com/galvanized/gainput"
)

// MaxTouchPoints bounds how many simultaneous contacts a Touch device
// tracks; touch surfaces beyond this count are silently ignored, matching
// the fixed-size canonical id space every other device in this library
// uses.
const MaxTouchPoints = 10

// Button is the canonical per-point button/axis space: PointDown(i),
// PointX(i), PointY(i), PointPressure(i) for i in [0, MaxTouchPoints).
type Button gainput.DeviceButtonID

const pointStride = 4 // Down, X, Y, Pressure

// PointDown, PointX, PointY and PointPressure return the canonical id for
// point i's boolean contact state and its three float axes.
func PointDown(i int) Button     { return Button(i * pointStride) }
func PointX(i int) Button        { return Button(i*pointStride + 1) }
func PointY(i int) Button        { return Button(i*pointStride + 2) }
func PointPressure(i int) Button { return Button(i*pointStride + 3) }

// ButtonCount and AxisAllocCount size a touch device's InputState: every
// point contributes one bool and three floats, densely packed so
// PointDown/X/Y/Pressure can compute an id without a lookup table.
const (
	ButtonCount    = MaxTouchPoints
	AxisAllocCount = MaxTouchPoints * pointStride
)

// IsAxis reports whether b names a float axis rather than the Down bool.
func IsAxis(b Button) bool { return int(b)%pointStride != 0 }

// ButtonType reports the gainput.ButtonType for b.
func ButtonType(b Button) gainput.ButtonType {
	if IsAxis(b) {
		return gainput.ButtonTypeFloat
	}
	return gainput.ButtonTypeBool
}

// ButtonName returns the stable ABI name for b, e.g. "touch_2_pressure",
// or "" if b is out of range.
func ButtonName(b Button) string {
	i := int(b) / pointStride
	if i < 0 || i >= MaxTouchPoints {
		return ""
	}
	switch int(b) % pointStride {
	case 0:
		return fmt.Sprintf("touch_%d_down", i)
	case 1:
		return fmt.Sprintf("touch_%d_x", i)
	case 2:
		return fmt.Sprintf("touch_%d_y", i)
	default:
		return fmt.Sprintf("touch_%d_pressure", i)
	}
}

var namesToButton = func() map[string]Button {
	m := make(map[string]Button, MaxTouchPoints*pointStride)
	for i := 0; i < AxisAllocCount; i++ {
		m[ButtonName(Button(i))] = Button(i)
	}
	return m
}()

// ButtonByName resolves a stable ABI name back to a Button.
func ButtonByName(name string) (Button, bool) {
	b, ok := namesToButton[name]
	return b, ok
}
