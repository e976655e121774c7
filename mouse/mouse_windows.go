// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build windows

package mouse

import "github.com/galvanized/gainput"

// Win32 message ids this backend inspects.
const (
	WMMouseMove  = 0x0200
	WMLButtonDown = 0x0201
	WMLButtonUp   = 0x0202
	WMRButtonDown = 0x0204
	WMRButtonUp   = 0x0205
	WMMButtonDown = 0x0207
	WMMButtonUp   = 0x0208
	WMMouseWheel  = 0x020A
	WMInput       = 0x00FF
)

// wheelDeltaUnit is WHEEL_DELTA: one notch of a standard mouse wheel.
const wheelDeltaUnit = 120

// Message is the opaque Win32 event blob HandleMessage accepts, mirroring
// keyboard.Message: wParam/lParam already widened by the caller's message
// loop, X/Y already extracted from lParam's packed coordinates for
// WM_MOUSEMOVE.
type Message struct {
	ID     uint32
	WParam uintptr
	X, Y   int32
}

// RawMotion is a RAWINPUT RAWMOUSE record's relevant fields, reported
// through WM_INPUT for the Raw device variant. Flags carries
// MOUSE_MOVE_ABSOLUTE (0x01) when LastX/LastY are absolute virtual-desktop
// coordinates rather than a relative delta — the tablet/remote-desktop
// case the spec calls out.
type RawMotion struct {
	Flags      uint16
	LastX      int32
	LastY      int32
	WheelDelta int16
}

const rawMoveAbsolute = 0x01

// WindowsBackend translates WM_* mouse messages (Standard variant) or
// WM_INPUT RAWMOUSE records (Raw variant) into Mouse updates.
type WindowsBackend struct {
	mouse *Mouse
}

// NewWindowsBackend returns a backend bound to m and installs itself as
// m's platform handler, so the manager's HandleMessage dispatch reaches
// it with either a Message or a RawMotion blob.
func NewWindowsBackend(m *Mouse) *WindowsBackend {
	b := &WindowsBackend{mouse: m}
	m.SetPlatformHandler(func(msg any, ds *gainput.DeltaState) {
		switch v := msg.(type) {
		case Message:
			b.HandleMessage(v, ds)
		case RawMotion:
			b.HandleRawMotion(v, ds)
		}
	})
	return b
}

// HandleMessage routes a Standard-variant window message.
func (b *WindowsBackend) HandleMessage(msg Message, ds *gainput.DeltaState) {
	switch msg.ID {
	case WMMouseMove:
		b.mouse.HandlePosition(float32(msg.X), float32(msg.Y), ds)
	case WMLButtonDown, WMLButtonUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonLeft), msg.ID == WMLButtonDown, ds)
	case WMRButtonDown, WMRButtonUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonRight), msg.ID == WMRButtonDown, ds)
	case WMMButtonDown, WMMButtonUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonMiddle), msg.ID == WMMButtonDown, ds)
	case WMMouseWheel:
		notches := float32(int16(msg.WParam>>16)) / wheelDeltaUnit
		b.handleWheel(notches, ds)
	}
}

// HandleRawMotion routes a Raw-variant WM_INPUT record.
func (b *WindowsBackend) HandleRawMotion(m RawMotion, ds *gainput.DeltaState) {
	if m.Flags&rawMoveAbsolute != 0 {
		b.mouse.HandleAbsoluteReport(float32(m.LastX), float32(m.LastY), ds)
	} else {
		b.mouse.HandleRelativeDelta(float32(m.LastX), float32(m.LastY), ds)
	}
	if m.WheelDelta != 0 {
		b.handleWheel(float32(m.WheelDelta)/wheelDeltaUnit, ds)
	}
}

// handleWheel fires the discrete up/down tick button for one Update's
// worth of auto-release and folds the same notch count into the running
// float accumulator the spec calls out for Win32.
func (b *WindowsBackend) handleWheel(notches float32, ds *gainput.DeltaState) {
	if notches > 0 {
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonWheelUp), true, ds)
	} else if notches < 0 {
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonWheelDown), true, ds)
	}
	b.mouse.HandleWheelAccum(notches, ds)
}
