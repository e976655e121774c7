// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build !linux && !windows && !darwin

package keyboard

import "github.com/galvanized/gainput"

// Enqueuer is the manager surface the mobile bridges need: a
// thread-safe producer entry point, since Android/iOS deliver input
// events on a platform callback thread rather than the input thread.
// *gainput.InputManager satisfies this.
type Enqueuer interface {
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
}

// MobileBridge adapts Android JNI callbacks and iOS UIKit key-command
// callbacks onto a Keyboard, replacing the source library's global
// gGainputInputManager pointer (its sole Android JNI consumer) with an
// explicit handle — see internal/androidbridge — rather than process
// state.
type MobileBridge struct {
	kb  *Keyboard
	mgr Enqueuer
}

// NewMobileBridge returns a bridge that enqueues key transitions against
// mgr for kb's device id.
func NewMobileBridge(kb *Keyboard, mgr Enqueuer) *MobileBridge {
	return &MobileBridge{kb: kb, mgr: mgr}
}

// OnKeyEvent is called from the platform callback thread with an
// already-translated Key and its new boolean state.
func (b *MobileBridge) OnKeyEvent(key Key, down bool) {
	b.mgr.EnqueueChangeBool(b.kb.DeviceID(), gainput.DeviceButtonID(key), down)
}

// OnUnicodeChar is called with a rune the platform's Unicode translation
// helper produced (the JVM helper through the activity handle on
// Android, UIKit's textInputMode on iOS). The text queue is not part of
// delta-state bookkeeping, so it is safe to append directly from any
// thread — Keyboard.HandleText is mutex-guarded.
func (b *MobileBridge) OnUnicodeChar(r rune) {
	b.kb.HandleText(r)
}
