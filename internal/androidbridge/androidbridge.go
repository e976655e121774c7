// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package androidbridge replaces the source library's single
// process-global gGainputInputManager pointer — the sole consumer of
// which is the JNI entry points the Android activity calls into — with
// an explicit registry keyed by an opaque native handle. Each embedding
// activity registers its manager once at startup and JNI callbacks look
// it up by the same handle, so multiple manager instances (tests,
// multiple embedded views) never collide on one global.
package androidbridge

import (
	"sync"

	"github.com/galvanized/gainput"
)

// Handle is the opaque Android-side identity a manager is registered
// under — typically a JNI global reference id or an activity instance
// pointer, passed through unchanged by the embedding Java/Kotlin glue.
type Handle uintptr

// Manager is the minimal surface JNI entry points need: routing an
// Android input event and enqueuing concurrent changes from the
// activity's UI thread. *gainput.InputManager satisfies this.
type Manager interface {
	HandleInput(event any)
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	EnqueueChangeFloat(device gainput.DeviceID, button gainput.DeviceButtonID, value float32)
}

var (
	mu   sync.RWMutex
	reg  = map[Handle]Manager{}
)

// Register associates h with m, replacing any previous registration
// under the same handle (an activity re-creating its manager on
// configuration change is expected to re-register).
func Register(h Handle, m Manager) {
	mu.Lock()
	defer mu.Unlock()
	reg[h] = m
}

// Unregister removes h, called from the activity's teardown path
// (onDestroy) so a stale handle never resolves to a defunct manager.
func Unregister(h Handle) {
	mu.Lock()
	defer mu.Unlock()
	delete(reg, h)
}

// Lookup returns the manager registered under h, or nil, false on miss —
// the JNI entry points must tolerate a miss silently (the activity may
// call in during a window between create and register, or after
// destroy).
func Lookup(h Handle) (Manager, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := reg[h]
	return m, ok
}
