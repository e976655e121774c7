// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

// DeviceID identifies a device within one manager's lifetime. Ids are
// assigned lazily — a pad in the pad pool has no id until it binds to
// hardware — and are never reused once retired.
type DeviceID uint32

// InvalidDeviceID is the sentinel returned by lookups that miss.
const InvalidDeviceID DeviceID = 0xFFFFFFFF

// DeviceButtonID is the dense per-device canonical button/axis space. A
// device's ButtonType reports whether a given id names a boolean button
// or a float axis.
type DeviceButtonID int32

// InvalidDeviceButtonID is returned by name-to-id lookups that miss.
const InvalidDeviceButtonID DeviceButtonID = -1

// ListenerID identifies a registered Listener.
type ListenerID uint32

// ModifierID identifies a registered DeviceStateModifier.
type ModifierID uint32

// ButtonType distinguishes a boolean button from a float axis.
type ButtonType int

const (
	ButtonTypeBool ButtonType = iota
	ButtonTypeFloat
)

// DeviceType is the top-level device kind. The source library's deep
// inheritance chain (InputDevice -> InputDeviceKeyboard -> per-platform
// impl) collapses here into this sum type plus a single capability
// interface — the polymorphism needed is one level deep and bounded by
// these four kinds.
type DeviceType int

const (
	DeviceTypeKeyboard DeviceType = iota
	DeviceTypeMouse
	DeviceTypePad
	DeviceTypeTouch
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeKeyboard:
		return "keyboard"
	case DeviceTypeMouse:
		return "mouse"
	case DeviceTypePad:
		return "pad"
	case DeviceTypeTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// DeviceVariant distinguishes back-ends within one DeviceType: a
// Standard mouse reports absolute coordinates, a Raw one accumulates
// deltas; a Null variant exists wherever a platform offers no real
// back-end but callers still expect a device at that index.
type DeviceVariant int

const (
	VariantStandard DeviceVariant = iota
	VariantRaw
	VariantNull
	VariantPadXInput
	VariantPadDirectInput
	VariantPadHID
	VariantPadNative
)

// DeviceState is the pad connection state machine; keyboard and mouse
// devices are always OK once constructed.
type DeviceState int

const (
	DeviceStateUnavailable DeviceState = iota
	DeviceStateResolving
	DeviceStateOK
)

// InputDevice is the capability set every device back-end implements.
// The manager owns devices in an arena indexed by DeviceID and never
// hands a device a pointer back to itself — back-ends that need manager
// services (minting an id, enqueuing a change) receive a small facade
// instead, so a device never stores an owner back-pointer.
type InputDevice interface {
	DeviceID() DeviceID
	DeviceType() DeviceType
	Variant() DeviceVariant
	Index() int
	State() DeviceState
	DeviceName() string

	IsValidButton(id DeviceButtonID) bool
	ButtonType(id DeviceButtonID) ButtonType
	ButtonName(id DeviceButtonID) string
	ButtonByName(name string) (DeviceButtonID, bool)

	GetBool(id DeviceButtonID) bool
	GetFloat(id DeviceButtonID) float32
	AnyButtonDown(out []DeviceButtonID) int

	// IsLateUpdate reports whether Update must run after modifiers (step
	// 8 of the tick) rather than before them (step 6).
	IsLateUpdate() bool
	// IsSynced reports whether the device already synchronizes its own
	// event delivery — through the concurrent queue or a polling tick
	// hook — rather than needing direct platform events. The platform
	// entry points skip synced devices and route only to devices with
	// IsSynced()==false.
	IsSynced() bool

	// Update publishes next state into current. Back-ends record deltas
	// into ds at the point a button or axis is actually written — from a
	// platform event handler or from draining the concurrent queue —
	// not here; Update's job is only to commit what has already been
	// staged and run any per-tick bookkeeping (wheel auto-release, text
	// buffer clearing) that depends on a full tick having elapsed.
	Update(ds *DeltaState)
}

// Rumbler is implemented by pad devices capable of haptic feedback.
type Rumbler interface {
	Vibrate(left, right float32)
	SetRumbleEffect(left, right float32, durationMS uint32) error
}

// LEDSetter is implemented by pad devices with an addressable LED (the
// PlayStation-family HID report).
type LEDSetter interface {
	SetLEDColor(r, g, b byte)
}

// ConnectionChecker is implemented by devices whose hardware presence
// must be polled rather than learned via callback (Linux joystick nodes,
// XInput slots).
type ConnectionChecker interface {
	CheckConnection()
}

// DeviceChangeFunc is the optional hook fired when a device (typically a
// pad) transitions into or out of DeviceStateOK.
type DeviceChangeFunc func(id DeviceID, device InputDevice, added bool)
