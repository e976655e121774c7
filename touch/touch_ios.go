// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build ios

package touch

import "github.com/galvanized/gainput"

// Enqueuer is the manager surface the touch bridge needs;
// *gainput.InputManager satisfies this.
type Enqueuer interface {
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	EnqueueChangeFloat(device gainput.DeviceID, button gainput.DeviceButtonID, value float32)
}

// IOSBridge adapts UITouch phases (Began/Moved/Ended/Cancelled, delivered
// through UIResponder's touchesBegan/Moved/Ended/Cancelled on the main
// thread) onto a Touch device, routing every update through the manager's
// thread-safe enqueue entry points. UIKit does not number touches itself,
// so the caller is responsible for assigning each live UITouch a stable
// index in [0, MaxTouchPoints) for the gesture's duration.
type IOSBridge struct {
	touch *Touch
	mgr   Enqueuer
}

// NewIOSBridge returns a bridge that enqueues point updates against mgr
// for t's device id.
func NewIOSBridge(t *Touch, mgr Enqueuer) *IOSBridge {
	return &IOSBridge{touch: t, mgr: mgr}
}

// OnPoint enqueues one point's full state for this event; down=false ends
// the contact (UITouchPhaseEnded or UITouchPhaseCancelled).
func (b *IOSBridge) OnPoint(index int, down bool, x, y, pressure float32) {
	if index < 0 || index >= MaxTouchPoints {
		return
	}
	id := b.touch.DeviceID()
	b.mgr.EnqueueChangeBool(id, gainput.DeviceButtonID(PointDown(index)), down)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointX(index)), x)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointY(index)), y)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointPressure(index)), pressure)
}
