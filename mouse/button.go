// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mouse implements the mouse device back-ends: a canonical
// button/axis space shared by every platform dialect, the Standard
// (absolute pointer) and Raw (accumulated-delta) variants, the
// one-tick wheel auto-release, and per-platform translators.
package mouse

import "github.com/galvanized/gainput"

// Button is the canonical mouse button/axis space. Button0..19 are
// boolean buttons (0=left, 1=right, 2=middle, 3=wheel-up, 4=wheel-down,
// 5..19 extra buttons some mice expose); MouseAxisX/Y are float axes.
type Button gainput.DeviceButtonID

const (
	Button0 Button = iota
	Button1
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8
	Button9
	Button10
	Button11
	Button12
	Button13
	Button14
	Button15
	Button16
	Button17
	Button18
	Button19

	buttonCount

	AxisX
	AxisY
	// AxisWheelAccum preserves the Win32 back-end's running wheel-notch
	// total as a float axis, alongside the discrete MouseButtonWheelUp/
	// Down bool ticks — "the wheel count accumulates into MouseButton
	// Middle as a float too" per spec §4.4, reworked here as its own
	// axis id rather than overloading a bool button's storage slot.
	AxisWheelAccum
)

// Aliases for the canonical left/right/middle buttons and the two
// wheel-tick pseudo-buttons.
const (
	ButtonLeft       = Button0
	ButtonRight      = Button1
	ButtonMiddle     = Button2
	ButtonWheelUp    = Button3
	ButtonWheelDown  = Button4
)

// ButtonCount and AxisAllocCount size a mouse's InputState.
const (
	ButtonCount    = int(buttonCount)
	AxisAllocCount = int(AxisWheelAccum) + 1
)

var buttonNames = map[Button]string{
	Button0: "mouse_left", Button1: "mouse_right", Button2: "mouse_middle",
	Button3: "mouse_wheel_up", Button4: "mouse_wheel_down",
	Button5: "mouse_button_5", Button6: "mouse_button_6", Button7: "mouse_button_7",
	Button8: "mouse_button_8", Button9: "mouse_button_9", Button10: "mouse_button_10",
	Button11: "mouse_button_11", Button12: "mouse_button_12", Button13: "mouse_button_13",
	Button14: "mouse_button_14", Button15: "mouse_button_15", Button16: "mouse_button_16",
	Button17: "mouse_button_17", Button18: "mouse_button_18", Button19: "mouse_button_19",
	AxisX: "mouse_x", AxisY: "mouse_y", AxisWheelAccum: "mouse_wheel_accum",
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

// IsAxis reports whether b names a float axis.
func IsAxis(b Button) bool { return b >= AxisX }

// ButtonType reports the gainput.ButtonType for b.
func ButtonType(b Button) gainput.ButtonType {
	if IsAxis(b) {
		return gainput.ButtonTypeFloat
	}
	return gainput.ButtonTypeBool
}
