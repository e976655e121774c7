// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package gainput is the input abstraction core: an Input Manager that
// owns keyboard, mouse, pad and touch devices, ticks them once per
// frame, and propagates changes to priority-sorted listeners. See the
// sub-packages keyboard, mouse, pad and touch for the per-device-kind
// back-ends, and internal/queue for the producer/consumer handoff that
// lets platform callback threads feed the manager's single-threaded tick.
package gainput

import (
	"sync"

	"github.com/galvanized/gainput/internal/container"
	"github.com/galvanized/gainput/internal/queue"
	"github.com/rs/zerolog"
)

// InputManager owns every device, drives the per-frame tick, and
// dispatches changes to listeners. All of its methods except Enqueue* and
// Init/Exit's teardown of the rumble side are meant to be called from a
// single caller-chosen "input thread" — see the concurrency notes on
// Update.
type InputManager struct {
	cfg Config
	log zerolog.Logger

	mu          sync.Mutex // guards initialized only; registry mutation is single-threaded
	initialized bool

	registry   *container.HashMap[DeviceID, InputDevice]
	nextID     DeviceID
	pendingDel []DeviceID

	listeners listenerTable
	modifiers modifierTable

	queue *queue.Queue

	clk               clock
	connectionProbeMs float64

	deltaState *DeltaState

	onDeviceChange DeviceChangeFunc

	// connectionProbes and tickHooks let a device family register
	// manager-driven callbacks that run independently of the registry —
	// needed for the pad pool, whose slots are not registered devices
	// until a backend actually binds them to hardware, so the registry's
	// own ConnectionChecker sweep never reaches an all-unplugged pool.
	connectionProbes []func()
	tickHooks        []func(ds *DeltaState)
	exitHooks        []func()
}

// AddConnectionProbe registers fn to run on the manager's connection
// -probe cadence (the same cadence driving each registered device's
// ConnectionChecker), for hardware enumeration that must happen before
// anything is registered — the pad pool's hot-plug scan being the
// motivating case.
func (m *InputManager) AddConnectionProbe(fn func()) {
	m.connectionProbes = append(m.connectionProbes, fn)
}

// AddTickHook registers fn to run once per Update, before non-late
// devices commit, so a platform backend that must drain its own event
// stream (evdev reads, XInput polls) can do so with the tick's own
// DeltaState.
func (m *InputManager) AddTickHook(fn func(ds *DeltaState)) {
	m.tickHooks = append(m.tickHooks, fn)
}

// AddExitHook registers fn to run during Exit, after every device has
// been reported removed — the rumble worker's stop and a backend's
// device-handle teardown hang off this.
func (m *InputManager) AddExitHook(fn func()) {
	m.exitHooks = append(m.exitHooks, fn)
}

// NewManager constructs a manager from cfg but does not call Init; Init
// must be called before Update or any device registration.
func NewManager(cfg Config) *InputManager {
	return &InputManager{
		cfg:      cfg,
		log:      cfg.Logger,
		registry: container.NewHashMap[DeviceID, InputDevice](),
		queue:    queue.New(512),
	}
}

// Init binds the manager for use. Calling Init twice without an
// intervening Exit is a programmer error (InitializationViolation).
func (m *InputManager) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		initializationViolation(ErrAlreadyInitialized, "Init called while already initialized")
	}
	m.initialized = true
	m.deltaState = NewDeltaState()
	m.log.Debug().Msg("input manager initialized")
}

// Exit tears the manager down: pending removals are drained, every
// remaining device is reported removed to the device-change callback, and
// the registry is cleared in registration order. After Exit, every call
// other than Init is a programmer error.
func (m *InputManager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		initializationViolation(ErrNotInitialized, "Exit called while not initialized")
	}
	m.drainPendingRemovals()
	for _, id := range m.registryOrder() {
		if dev, ok := m.registry.Get(id); ok && m.onDeviceChange != nil {
			m.onDeviceChange(id, dev, false)
		}
	}
	m.registry.Clear()
	for _, hook := range m.exitHooks {
		hook()
	}
	m.exitHooks = nil
	m.connectionProbes = nil
	m.tickHooks = nil
	m.initialized = false
	m.log.Debug().Msg("input manager exited")
}

func (m *InputManager) requireInitialized() {
	if !m.initialized {
		initializationViolation(ErrNotInitialized, "manager used before Init or after Exit")
	}
}

// registryOrder returns the current registry keys in insertion order,
// matching the invariant that device destruction on Exit proceeds in
// registry order.
func (m *InputManager) registryOrder() []DeviceID {
	var out []DeviceID
	m.registry.Each(func(k DeviceID, _ InputDevice) { out = append(out, k) })
	return out
}

// RegisterDevice mints a fresh DeviceID for dev and inserts it into the
// registry, firing the device-change callback with added=true. Call this
// only once a device has resolved to a real hardware binding (a pad
// leaving DeviceStateResolving for DeviceStateOK); pads still in the pad
// pool waiting for hardware are never registered.
func (m *InputManager) RegisterDevice(dev InputDevice, bind func(id DeviceID)) DeviceID {
	m.requireInitialized()
	m.nextID++
	id := m.nextID
	bind(id)
	m.registry.Set(id, dev)
	if m.onDeviceChange != nil {
		m.onDeviceChange(id, dev, true)
	}
	return id
}

// RemoveDevice schedules id for removal; it is erased from the registry
// at the end of the current (or next) tick, never mid-tick, so that
// in-flight iteration over the registry never observes a torn view.
func (m *InputManager) RemoveDevice(id DeviceID) {
	m.requireInitialized()
	m.pendingDel = append(m.pendingDel, id)
}

func (m *InputManager) drainPendingRemovals() {
	for _, id := range m.pendingDel {
		if dev, ok := m.registry.Get(id); ok {
			if m.onDeviceChange != nil {
				m.onDeviceChange(id, dev, false)
			}
			m.registry.Delete(id)
		}
	}
	m.pendingDel = m.pendingDel[:0]
}

func (m *InputManager) isPendingRemoval(id DeviceID) bool {
	for _, d := range m.pendingDel {
		if d == id {
			return true
		}
	}
	return false
}

// GetDevice returns the device registered at id, or nil on miss.
func (m *InputManager) GetDevice(id DeviceID) InputDevice {
	dev, _ := m.registry.Get(id)
	return dev
}

// FindDeviceID scans the registry for the nth (0-based) device of type t,
// returning InvalidDeviceID on miss.
func (m *InputManager) FindDeviceID(t DeviceType, index int) DeviceID {
	found := 0
	var result DeviceID = InvalidDeviceID
	m.registry.Each(func(k DeviceID, d InputDevice) {
		if result != InvalidDeviceID || d.DeviceType() != t {
			return
		}
		if found == index {
			result = k
			return
		}
		found++
	})
	return result
}

// FindDeviceIDByTypeName scans the registry for the nth device whose
// DeviceType's String() matches typeName.
func (m *InputManager) FindDeviceIDByTypeName(typeName string, index int) DeviceID {
	found := 0
	var result DeviceID = InvalidDeviceID
	m.registry.Each(func(k DeviceID, d InputDevice) {
		if result != InvalidDeviceID || d.DeviceType().String() != typeName {
			return
		}
		if found == index {
			result = k
			return
		}
		found++
	})
	return result
}

// GetDeviceCountByType returns how many registered devices match t.
func (m *InputManager) GetDeviceCountByType(t DeviceType) int {
	n := 0
	m.registry.Each(func(_ DeviceID, d InputDevice) {
		if d.DeviceType() == t {
			n++
		}
	})
	return n
}

// AddListener registers l and returns its id, re-sorting the listener
// table by descending priority.
func (m *InputManager) AddListener(l Listener) ListenerID {
	return m.listeners.add(l)
}

// RemoveListener unregisters the listener previously returned by
// AddListener.
func (m *InputManager) RemoveListener(id ListenerID) {
	m.listeners.remove(id)
}

// AddDeviceStateModifier registers m and returns its id.
func (m *InputManager) AddDeviceStateModifier(mod DeviceStateModifier) ModifierID {
	return m.modifiers.add(mod)
}

// RemoveDeviceStateModifier unregisters a previously-added modifier.
func (m *InputManager) RemoveDeviceStateModifier(id ModifierID) {
	m.modifiers.remove(id)
}

// SetDeviceListener installs the optional add/remove hook fired whenever
// a device enters or leaves the registry.
func (m *InputManager) SetDeviceListener(cb DeviceChangeFunc) {
	m.onDeviceChange = cb
}

// GetAnyButtonDown scans every registered device and writes up to
// len(outButtons) currently-down buttons into outButtons, with the owning
// device id at the same index of out while out has room, returning the
// count written. Devices
// are visited in registry order; a device contributing fewer than its
// share still lets later devices fill the remainder.
func (m *InputManager) GetAnyButtonDown(out []DeviceID, outButtons []DeviceButtonID) int {
	n := 0
	m.registry.Each(func(id DeviceID, d InputDevice) {
		if n >= len(outButtons) {
			return
		}
		remaining := outButtons[n:]
		var ids []DeviceButtonID
		ids = make([]DeviceButtonID, len(remaining))
		written := d.AnyButtonDown(ids)
		for i := 0; i < written && n < len(outButtons); i++ {
			outButtons[n] = ids[i]
			if n < len(out) {
				out[n] = id
			}
			n++
		}
	})
	return n
}

// EnqueueChangeBool is the thread-safe entry point producers (HID
// worker, Android/iOS callback threads) use to hand a boolean change to
// the manager's update tick.
func (m *InputManager) EnqueueChangeBool(device DeviceID, button DeviceButtonID, value bool) {
	m.queue.Enqueue(queue.Change{DeviceID: uint32(device), ButtonID: int32(button), IsFloat: false, BoolValue: value})
}

// EnqueueChangeFloat is the float-valued counterpart to
// EnqueueChangeBool.
func (m *InputManager) EnqueueChangeFloat(device DeviceID, button DeviceButtonID, value float32) {
	m.queue.Enqueue(queue.Change{DeviceID: uint32(device), ButtonID: int32(button), IsFloat: true, FloatValue: value})
}

// boolWriter and floatWriter are implemented by devices that accept a
// queued write applied directly against their next-state buffer, letting
// the manager drain the concurrent queue without depending on any
// specific device implementation.
type boolWriter interface {
	HandleButtonBool(button DeviceButtonID, value bool, ds *DeltaState)
}
type floatWriter interface {
	HandleButtonFloat(button DeviceButtonID, value float32, ds *DeltaState)
}

func (m *InputManager) drainQueue(ds *DeltaState) {
	for _, c := range m.queue.Drain() {
		dev := m.GetDevice(DeviceID(c.DeviceID))
		if dev == nil {
			continue
		}
		if c.IsFloat {
			if w, ok := dev.(floatWriter); ok {
				w.HandleButtonFloat(DeviceButtonID(c.ButtonID), c.FloatValue, ds)
			}
		} else {
			if w, ok := dev.(boolWriter); ok {
				w.HandleButtonBool(DeviceButtonID(c.ButtonID), c.BoolValue, ds)
			}
		}
	}
}

// Update runs one tick: connection probe, clock advance, queue drain,
// tick hooks, non-late device updates, modifiers, late device updates,
// listener notification, then the pending-removals drain. Must be called
// from the single input thread, the same thread that registers devices,
// listeners and modifiers; those tables are not guarded by a lock.
func (m *InputManager) Update(deltaSeconds float64) {
	m.requireInitialized()

	m.connectionProbeMs += deltaSeconds * 1000.0
	probePeriod := float64(m.cfg.CheckConnectionPeriodMS)
	if probePeriod <= 0 {
		probePeriod = 200
	}
	if m.connectionProbeMs >= probePeriod {
		m.connectionProbeMs = 0
		m.registry.Each(func(_ DeviceID, d InputDevice) {
			if cc, ok := d.(ConnectionChecker); ok {
				cc.CheckConnection()
			}
		})
		for _, probe := range m.connectionProbes {
			probe()
		}
	}

	m.clk.Advance(deltaSeconds)

	var ds *DeltaState
	if len(m.listeners.entries) > 0 {
		ds = m.deltaState
	}

	m.drainQueue(ds)

	for _, hook := range m.tickHooks {
		hook(ds)
	}

	m.registry.Each(func(id DeviceID, d InputDevice) {
		if d.IsLateUpdate() || m.isPendingRemoval(id) {
			return
		}
		d.Update(ds)
	})

	m.modifiers.update(ds)

	m.registry.Each(func(id DeviceID, d InputDevice) {
		if !d.IsLateUpdate() || m.isPendingRemoval(id) {
			return
		}
		d.Update(ds)
	})

	if ds != nil {
		m.listeners.notify(ds)
		ds.Clear()
	}

	m.drainPendingRemovals()
}

// dispatchDelta returns the delta buffer platform event handlers should
// record into: the manager's own when listeners exist, nil otherwise —
// the same rule the tick applies.
func (m *InputManager) dispatchDelta() *DeltaState {
	if len(m.listeners.entries) == 0 {
		return nil
	}
	return m.deltaState
}

// HandleEvent routes an opaque X11/AppKit event to every registered
// device that still wants direct platform events (IsSynced()==false).
// Changes recorded here flush to listeners on the next Update.
func (m *InputManager) HandleEvent(xevent any) {
	ds := m.dispatchDelta()
	m.dispatchPlatformEvent(func(d InputDevice) {
		if h, ok := d.(interface{ HandleEvent(any, *DeltaState) }); ok {
			h.HandleEvent(xevent, ds)
		}
	})
}

// HandleMessage routes an opaque Win32 MSG to every registered device
// that still wants direct platform events.
func (m *InputManager) HandleMessage(msg any) {
	ds := m.dispatchDelta()
	m.dispatchPlatformEvent(func(d InputDevice) {
		if h, ok := d.(interface{ HandleMessage(any, *DeltaState) }); ok {
			h.HandleMessage(msg, ds)
		}
	})
}

// HandleInput routes an opaque Android input event to every registered
// device that still wants direct platform events.
func (m *InputManager) HandleInput(event any) {
	ds := m.dispatchDelta()
	m.dispatchPlatformEvent(func(d InputDevice) {
		if h, ok := d.(interface{ HandleInput(any, *DeltaState) }); ok {
			h.HandleInput(event, ds)
		}
	})
}

func (m *InputManager) dispatchPlatformEvent(fn func(InputDevice)) {
	m.registry.Each(func(_ DeviceID, d InputDevice) {
		if d.IsSynced() {
			return
		}
		fn(d)
	})
}

// ClearAllStates resets the current and next state of device id to all
// zero, without removing it from the registry — used when a window loses
// focus and every held key/button must be forced up.
func (m *InputManager) ClearAllStates(id DeviceID) {
	if dev := m.GetDevice(id); dev != nil {
		if c, ok := dev.(interface{ ClearAllStates() }); ok {
			c.ClearAllStates()
		}
	}
}
