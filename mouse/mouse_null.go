// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build !linux && !windows && !darwin

package mouse

import "github.com/galvanized/gainput"

// Enqueuer is the manager surface mobile bridges need; *gainput.InputManager
// satisfies this.
type Enqueuer interface {
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	EnqueueChangeFloat(device gainput.DeviceID, button gainput.DeviceButtonID, value float32)
}

// MobileBridge adapts a platform pointer/stylus callback onto a Mouse
// (Android exposes a synthetic pointer device this way; iOS does not, but
// the same bridge shape is reused for a trackpad-as-mouse scenario under
// Catalyst). Android/iOS deliver these callbacks off the input thread, so
// every update is routed through the manager's thread-safe enqueue entry
// points rather than writing Mouse state directly.
type MobileBridge struct {
	mouse *Mouse
	mgr   Enqueuer
}

// NewMobileBridge returns a bridge that enqueues pointer updates against
// mgr for m's device id.
func NewMobileBridge(m *Mouse, mgr Enqueuer) *MobileBridge {
	return &MobileBridge{mouse: m, mgr: mgr}
}

// OnButton enqueues a button transition.
func (b *MobileBridge) OnButton(button Button, down bool) {
	b.mgr.EnqueueChangeBool(b.mouse.DeviceID(), gainput.DeviceButtonID(button), down)
}

// OnPosition enqueues an absolute position update.
func (b *MobileBridge) OnPosition(x, y float32) {
	b.mgr.EnqueueChangeFloat(b.mouse.DeviceID(), gainput.DeviceButtonID(AxisX), x)
	b.mgr.EnqueueChangeFloat(b.mouse.DeviceID(), gainput.DeviceButtonID(AxisY), y)
}
