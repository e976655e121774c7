// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build darwin && !ios

package mouse

import "github.com/galvanized/gainput"

// EventType distinguishes the NSEvent subtypes this back-end cares about.
type EventType int

const (
	EventMove EventType = iota
	EventLeftDown
	EventLeftUp
	EventRightDown
	EventRightUp
	EventOtherDown
	EventOtherUp
	EventScrollWheel
)

// Event is the opaque macOS mouse event blob HandleEvent accepts: the
// subset of an NSEvent the mouse back-end needs, translated by the
// caller's own AppKit event loop.
type Event struct {
	Type EventType
	X, Y float32 // locationInWindow, for EventMove
	// DeltaX/DeltaY are the event's deltaX/deltaY, valid for EventMove
	// (mouse-moved, used by the Raw variant) and EventScrollWheel.
	DeltaX, DeltaY float32
}

// DarwinBackend translates AppKit mouse events; it assumes the caller's
// event loop and the manager's Update both run on the main thread, so it
// writes directly into the mouse's next state rather than the concurrent
// queue.
type DarwinBackend struct {
	mouse *Mouse
}

// NewDarwinBackend returns a backend bound to m and installs itself as
// m's platform handler, so the manager's HandleEvent dispatch reaches it.
func NewDarwinBackend(m *Mouse) *DarwinBackend {
	b := &DarwinBackend{mouse: m}
	m.SetPlatformHandler(b.HandleEvent)
	return b
}

// HandleEvent translates one NSEvent-derived Event. For the Standard
// variant, EventMove carries the absolute window-local position; for the
// Raw variant, its DeltaX/DeltaY carry the relative motion instead.
func (b *DarwinBackend) HandleEvent(event any, ds *gainput.DeltaState) {
	e, ok := event.(Event)
	if !ok {
		return
	}
	switch e.Type {
	case EventMove:
		if b.mouse.variant == gainput.VariantRaw {
			b.mouse.HandleRelativeDelta(e.DeltaX, e.DeltaY, ds)
		} else {
			b.mouse.HandlePosition(e.X, e.Y, ds)
		}
	case EventLeftDown, EventLeftUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonLeft), e.Type == EventLeftDown, ds)
	case EventRightDown, EventRightUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonRight), e.Type == EventRightDown, ds)
	case EventOtherDown, EventOtherUp:
		b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonMiddle), e.Type == EventOtherDown, ds)
	case EventScrollWheel:
		if e.DeltaY > 0 {
			b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonWheelUp), true, ds)
		} else if e.DeltaY < 0 {
			b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonWheelDown), true, ds)
		}
		b.mouse.HandleWheelAccum(e.DeltaY, ds)
	}
}
