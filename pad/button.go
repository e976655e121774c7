// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package pad implements the gamepad device back-ends: vendor dialect
// resolution, hat decoding, stick normalization and dead-zones, rumble
// scheduling, and the per-platform enumeration back-ends (evdev+inotify
// on Linux, XInput/DirectInput-style on Windows, a unified HID layer for
// the PlayStation family, and a native-framework facade on Apple/Quest).
package pad

import "github.com/galvanized/gainput"

// Button is the canonical pad button space. Values below Axis0 are
// boolean buttons; Axis0 and above are float axes, matching how
// gainput.ButtonType distinguishes the two.
type Button gainput.DeviceButtonID

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonStart
	ButtonSelect
	ButtonL1
	ButtonR1
	ButtonL2
	ButtonR2
	ButtonL3
	ButtonR3
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonHome

)

// buttonReservedEnd leaves room for platform-specific extra buttons
// (extra face buttons on some Android pads) without colliding with the
// axis range below.
const buttonReservedEnd Button = 32

const (
	AxisLeftStickX Button = buttonReservedEnd + iota
	AxisLeftStickY
	AxisRightStickX
	AxisRightStickY
	Axis4 // left trigger on most vendor dialects
	Axis5 // right trigger on most vendor dialects
	// AxisMotion0/1/2 cover accelerometer/gyro axes on devices that
	// expose motion sensing (Android, some Bluetooth pads).
	AxisMotion0
	AxisMotion1
	AxisMotion2
)

// buttonNames are the ABI-stable names returned by ButtonName and
// accepted by ButtonByName.
var buttonNames = map[Button]string{
	ButtonA:         "pad_button_a",
	ButtonB:         "pad_button_b",
	ButtonX:         "pad_button_x",
	ButtonY:         "pad_button_y",
	ButtonStart:     "pad_button_start",
	ButtonSelect:    "pad_button_select",
	ButtonL1:        "pad_button_l1",
	ButtonR1:        "pad_button_r1",
	ButtonL2:        "pad_button_l2",
	ButtonR2:        "pad_button_r2",
	ButtonL3:        "pad_button_l3",
	ButtonR3:        "pad_button_r3",
	ButtonUp:        "pad_button_up",
	ButtonDown:      "pad_button_down",
	ButtonLeft:      "pad_button_left",
	ButtonRight:     "pad_button_right",
	ButtonHome:      "pad_button_home",
	AxisLeftStickX:  "pad_left_stick_x",
	AxisLeftStickY:  "pad_left_stick_y",
	AxisRightStickX: "pad_right_stick_x",
	AxisRightStickY: "pad_right_stick_y",
	Axis4:           "pad_axis_4",
	Axis5:           "pad_axis_5",
	AxisMotion0:     "pad_axis_motion_0",
	AxisMotion1:     "pad_axis_motion_1",
	AxisMotion2:     "pad_axis_motion_2",
}

var namesToButton = func() map[string]Button {
	m := make(map[string]Button, len(buttonNames))
	for b, n := range buttonNames {
		m[n] = b
	}
	return m
}()

// ButtonName returns the stable ABI name for b, or "" if b is unknown.
func ButtonName(b Button) string { return buttonNames[b] }

// ButtonByName resolves a stable ABI name back to a Button.
func ButtonByName(name string) (Button, bool) {
	b, ok := namesToButton[name]
	return b, ok
}

// IsAxis reports whether b names a float axis rather than a boolean
// button.
func IsAxis(b Button) bool { return b >= AxisLeftStickX }

// ButtonType reports the gainput.ButtonType for b.
func ButtonType(b Button) gainput.ButtonType {
	if IsAxis(b) {
		return gainput.ButtonTypeFloat
	}
	return gainput.ButtonTypeBool
}

// ButtonCount and AxisAllocCount size a pad's InputState: ButtonCount
// booleans (the face/shoulder/dpad/home buttons) and enough floats to
// cover every axis id including the reserved gap.
const (
	ButtonCount    = int(buttonReservedEnd)
	AxisAllocCount = int(AxisMotion2) + 1
)
