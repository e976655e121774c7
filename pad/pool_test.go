// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package pad

import (
	"testing"

	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeEnqueuer is the minimal manager stand-in NewPool needs, minting
// sequential ids the way InputManager.RegisterDevice does.
type fakeEnqueuer struct {
	nextID  gainput.DeviceID
	removed []gainput.DeviceID
	probes  []func()
	ticks   []func(ds *gainput.DeltaState)
	exits   []func()
}

func (f *fakeEnqueuer) RegisterDevice(dev gainput.InputDevice, bind func(id gainput.DeviceID)) gainput.DeviceID {
	f.nextID++
	bind(f.nextID)
	return f.nextID
}
func (f *fakeEnqueuer) RemoveDevice(id gainput.DeviceID) { f.removed = append(f.removed, id) }
func (f *fakeEnqueuer) AddConnectionProbe(fn func())     { f.probes = append(f.probes, fn) }
func (f *fakeEnqueuer) AddTickHook(fn func(ds *gainput.DeltaState)) {
	f.ticks = append(f.ticks, fn)
}
func (f *fakeEnqueuer) AddExitHook(fn func()) { f.exits = append(f.exits, fn) }
func (f *fakeEnqueuer) EnqueueChangeBool(gainput.DeviceID, gainput.DeviceButtonID, bool)     {}
func (f *fakeEnqueuer) EnqueueChangeFloat(gainput.DeviceID, gainput.DeviceButtonID, float32) {}

// TestNewPoolBindLifecycle is scenario S4's manager-facing half: pool
// slots start Unavailable, a bind mints a fresh id through the manager,
// an unbind retires it, and the slot survives for a future connect.
func TestNewPoolBindLifecycle(t *testing.T) {
	mgr := &fakeEnqueuer{}
	pool := NewPool(mgr, 2, 0.15, nil, true, zerolog.Nop())
	defer func() {
		for _, fn := range mgr.exits {
			fn()
		}
	}()

	require.Len(t, pool, 2)
	for _, p := range pool {
		require.Equal(t, gainput.DeviceStateUnavailable, p.State())
		require.Equal(t, gainput.InvalidDeviceID, p.DeviceID())
	}
	require.NotEmpty(t, mgr.probes, "pool must register a connection probe")
	require.NotEmpty(t, mgr.exits, "pool must register rumble/backend teardown")

	pool[0].Bind(DefaultDialect(), nil)
	require.Equal(t, gainput.DeviceStateOK, pool[0].State())
	require.Equal(t, gainput.DeviceID(1), pool[0].DeviceID())

	pool[0].Unbind()
	require.Equal(t, gainput.DeviceStateUnavailable, pool[0].State())
	require.Equal(t, gainput.InvalidDeviceID, pool[0].DeviceID())
	require.Equal(t, []gainput.DeviceID{1}, mgr.removed)

	pool[0].Bind(DefaultDialect(), nil)
	require.Equal(t, gainput.DeviceID(2), pool[0].DeviceID(), "retired ids are never reused")
}

func TestNewPoolClampsToPlatformMax(t *testing.T) {
	mgr := &fakeEnqueuer{}
	pool := NewPool(mgr, 64, 0.15, nil, true, zerolog.Nop())
	defer func() {
		for _, fn := range mgr.exits {
			fn()
		}
	}()
	require.Len(t, pool, platformMaxPads)
}
