// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build android

package touch

import "github.com/galvanized/gainput"

// Enqueuer is the manager surface the touch bridge needs;
// *gainput.InputManager satisfies this.
type Enqueuer interface {
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	EnqueueChangeFloat(device gainput.DeviceID, button gainput.DeviceButtonID, value float32)
}

// AndroidBridge adapts MotionEvent ACTION_DOWN/MOVE/UP/POINTER_DOWN/
// POINTER_UP callbacks (delivered on the UI thread, per
// Activity.onTouchEvent) onto a Touch device, routing every update
// through the manager's thread-safe enqueue entry points.
type AndroidBridge struct {
	touch *Touch
	mgr   Enqueuer
}

// NewAndroidBridge returns a bridge that enqueues point updates against
// mgr for t's device id.
func NewAndroidBridge(t *Touch, mgr Enqueuer) *AndroidBridge {
	return &AndroidBridge{touch: t, mgr: mgr}
}

// OnPoint enqueues one point's full state for this event; down=false ends
// the contact.
func (b *AndroidBridge) OnPoint(index int, down bool, x, y, pressure float32) {
	if index < 0 || index >= MaxTouchPoints {
		return
	}
	id := b.touch.DeviceID()
	b.mgr.EnqueueChangeBool(id, gainput.DeviceButtonID(PointDown(index)), down)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointX(index)), x)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointY(index)), y)
	b.mgr.EnqueueChangeFloat(id, gainput.DeviceButtonID(PointPressure(index)), pressure)
}
