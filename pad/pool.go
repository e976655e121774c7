// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
)

// Enqueuer is the subset of *gainput.InputManager the pool needs: mint an
// id for a pad that just bound to hardware, retire one that dropped off,
// and run the pool's hot-plug scan and event drain on the manager's own
// cadence. A pad slot is not registered at all until it resolves to real
// hardware, so the pool cannot rely on the registry's per-device
// ConnectionChecker sweep to ever reach it — AddConnectionProbe and
// AddTickHook exist specifically to give an all-unplugged pool a way to
// keep scanning.
type Enqueuer interface {
	RegisterDevice(dev gainput.InputDevice, bind func(id gainput.DeviceID)) gainput.DeviceID
	RemoveDevice(id gainput.DeviceID)
	AddConnectionProbe(fn func())
	AddTickHook(fn func(ds *gainput.DeltaState))
	AddExitHook(fn func())
	EnqueueChangeBool(device gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	EnqueueChangeFloat(device gainput.DeviceID, button gainput.DeviceButtonID, value float32)
}

// noopBackend stands in when a platform's only enumeration path is
// disabled by configuration; the pool still exists, pads just never
// self-bind.
type noopBackend struct{}

func (noopBackend) CheckConnection() {}

// NewPool is the create_controllers operation: it allocates count pad
// slots and wires them to this platform's back-end, chosen at compile
// time by build tags the same way the teacher's device/native.go
// dispatches a nativeLayer() factory function — exactly one of
// pad_linux.go/pad_windows.go/pad_darwin.go/pad_null.go is compiled into
// any given binary, so there is no runtime platform switch to get wrong.
// deadzone is the fallback every pad starts with until a dialect
// resolves (the dialect's own StickDeadzone then takes over); db may be
// nil, in which case every pad falls back to DefaultDialect until the
// caller loads one with Database.LoadText. hidDiscovery mirrors
// Config.HIDDiscoveryEnabled: platforms whose only enumeration path is
// the unified HID layer get a no-op backend when it is off (the
// platform controller framework is expected to drive pads directly).
func NewPool(mgr Enqueuer, count int, deadzone float32, db *Database, hidDiscovery bool, log zerolog.Logger) []*Pad {
	if db == nil {
		db = NewDatabase()
	}
	if count > platformMaxPads {
		count = platformMaxPads
	}
	pool := make([]*Pad, count)
	variant := platformVariant()
	for i := range pool {
		pool[i] = NewPad(i, variant, deadzone, func(p *Pad) {
			mgr.RegisterDevice(p, p.SetID)
		})
		pool[i].SetOnUnbind(mgr.RemoveDevice)
		pool[i].SetEnqueue(mgr.EnqueueChangeBool, mgr.EnqueueChangeFloat)
	}

	rumble := NewRumbleWorker(count, log)
	go rumble.Run()

	backend := newPlatformBackend(pool, db, rumble, hidDiscovery, log)
	for _, p := range pool {
		p.SetBackend(backend, rumble)
	}

	mgr.AddConnectionProbe(backend.CheckConnection)
	if poller, ok := backend.(interface{ Poll(*gainput.DeltaState) }); ok {
		mgr.AddTickHook(poller.Poll)
	}
	mgr.AddExitHook(rumble.Stop)
	if closer, ok := backend.(interface{ Close() }); ok {
		mgr.AddExitHook(closer.Close)
	}
	return pool
}
