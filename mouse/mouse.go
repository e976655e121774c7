// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package mouse

import (
	"sync"

	"github.com/galvanized/gainput"
)

// Mouse is a mouse device. Standard variants report absolute pointer
// coordinates into AxisX/AxisY; Raw variants accumulate relative deltas
// each tick and reset to zero once the tick is committed.
type Mouse struct {
	mu sync.Mutex

	index   int
	id      gainput.DeviceID
	variant gainput.DeviceVariant
	synced  bool

	current *gainput.InputState
	next    *gainput.InputState

	// prevAbsX/Y is the Raw back-end's baseline for absolute-position
	// reports (X11 XInput2 raw motion, Win32 MOUSE_MOVE_ABSOLUTE); Warp
	// resets it so a programmatic pointer move does not read back as a
	// spurious delta.
	prevAbsX, prevAbsY float32
	haveBaseline       bool

	// platformHandler is installed by the compiled-in platform backend;
	// the manager's opaque event entry points reach it through
	// HandleEvent/HandleMessage.
	platformHandler func(event any, ds *gainput.DeltaState)
}

// NewMouse allocates a mouse device of the given variant.
func NewMouse(index int, variant gainput.DeviceVariant, synced bool) *Mouse {
	return &Mouse{
		index:   index,
		variant: variant,
		synced:  synced,
		current: gainput.NewInputState(ButtonCount, AxisAllocCount),
		next:    gainput.NewInputState(ButtonCount, AxisAllocCount),
	}
}

func (m *Mouse) SetID(id gainput.DeviceID) { m.id = id }

func (m *Mouse) DeviceID() gainput.DeviceID     { return m.id }
func (m *Mouse) DeviceType() gainput.DeviceType { return gainput.DeviceTypeMouse }
func (m *Mouse) Variant() gainput.DeviceVariant { return m.variant }
func (m *Mouse) Index() int                     { return m.index }
func (m *Mouse) State() gainput.DeviceState      { return gainput.DeviceStateOK }
func (m *Mouse) DeviceName() string {
	if m.variant == gainput.VariantRaw {
		return "mouse-raw"
	}
	return "mouse"
}

func (m *Mouse) IsValidButton(id gainput.DeviceButtonID) bool {
	return id >= 0 && int(id) < AxisAllocCount
}

func (m *Mouse) ButtonType(id gainput.DeviceButtonID) gainput.ButtonType {
	return ButtonType(Button(id))
}
func (m *Mouse) ButtonName(id gainput.DeviceButtonID) string { return ButtonName(Button(id)) }
func (m *Mouse) ButtonByName(name string) (gainput.DeviceButtonID, bool) {
	b, ok := ButtonByName(name)
	return gainput.DeviceButtonID(b), ok
}

func (m *Mouse) GetBool(id gainput.DeviceButtonID) bool { return m.current.GetBool(id) }
func (m *Mouse) GetFloat(id gainput.DeviceButtonID) float32 { return m.current.GetFloat(id) }

func (m *Mouse) AnyButtonDown(out []gainput.DeviceButtonID) int {
	n := 0
	for i := 0; i < ButtonCount && n < len(out); i++ {
		if m.current.GetBool(gainput.DeviceButtonID(i)) {
			out[n] = gainput.DeviceButtonID(i)
			n++
		}
	}
	return n
}

func (m *Mouse) IsLateUpdate() bool { return false }
func (m *Mouse) IsSynced() bool     { return m.synced }

// Update commits next into current, releasing the wheel tick buttons
// exactly one tick after they went true (scenario S2: one WM_MOUSEWHEEL
// event is observed as a single false->true->false pulse spanning two
// ticks) and, for the Raw variant, zeroing the per-tick delta axes once
// they have been read.
func (m *Mouse) Update(ds *gainput.DeltaState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, btn := range [...]Button{ButtonWheelUp, ButtonWheelDown} {
		id := gainput.DeviceButtonID(btn)
		if m.current.GetBool(id) && m.next.GetBool(id) {
			m.next.SetBool(id, false)
			ds.RecordBool(m.id, id, true, false)
		}
	}

	m.current.CopyFrom(m.next)

	if m.variant == gainput.VariantRaw {
		m.next.SetFloat(gainput.DeviceButtonID(AxisX), 0)
		m.next.SetFloat(gainput.DeviceButtonID(AxisY), 0)
	}
}

// SetPlatformHandler installs the event translator the manager's opaque
// platform entry points dispatch to; backend constructors call this.
func (m *Mouse) SetPlatformHandler(fn func(event any, ds *gainput.DeltaState)) {
	m.platformHandler = fn
}

// HandleEvent receives an opaque X11/AppKit event from the manager's
// HandleEvent dispatch and forwards it to the installed backend.
func (m *Mouse) HandleEvent(event any, ds *gainput.DeltaState) {
	if m.platformHandler != nil {
		m.platformHandler(event, ds)
	}
}

// HandleMessage receives an opaque Win32 message from the manager's
// HandleMessage dispatch.
func (m *Mouse) HandleMessage(msg any, ds *gainput.DeltaState) {
	if m.platformHandler != nil {
		m.platformHandler(msg, ds)
	}
}

// HandleButtonBool records a button transition (left/right/middle/extra
// buttons, and the wheel-tick pseudo-buttons) into next.
func (m *Mouse) HandleButtonBool(button gainput.DeviceButtonID, down bool, ds *gainput.DeltaState) {
	m.mu.Lock()
	old := m.next.GetBool(button)
	m.next.SetBool(button, down)
	m.mu.Unlock()
	ds.RecordBool(m.id, button, old, down)
}

// HandlePosition sets the Standard variant's absolute pointer position.
func (m *Mouse) HandlePosition(x, y float32, ds *gainput.DeltaState) {
	xID := gainput.DeviceButtonID(AxisX)
	yID := gainput.DeviceButtonID(AxisY)
	m.mu.Lock()
	oldX, oldY := m.next.GetFloat(xID), m.next.GetFloat(yID)
	m.next.SetFloat(xID, x)
	m.next.SetFloat(yID, y)
	m.mu.Unlock()
	ds.RecordFloat(m.id, xID, oldX, x)
	ds.RecordFloat(m.id, yID, oldY, y)
}

// HandleRelativeDelta accumulates a Raw variant's relative motion report
// (Win32 MOUSE_MOVE_RELATIVE, Linux EV_REL) into this tick's delta axes.
// Multiple reports within one tick sum rather than overwrite.
func (m *Mouse) HandleRelativeDelta(dx, dy float32, ds *gainput.DeltaState) {
	xID := gainput.DeviceButtonID(AxisX)
	yID := gainput.DeviceButtonID(AxisY)
	m.mu.Lock()
	oldX, oldY := m.next.GetFloat(xID), m.next.GetFloat(yID)
	newX, newY := oldX+dx, oldY+dy
	m.next.SetFloat(xID, newX)
	m.next.SetFloat(yID, newY)
	m.mu.Unlock()
	ds.RecordFloat(m.id, xID, oldX, newX)
	ds.RecordFloat(m.id, yID, oldY, newY)
}

// HandleAbsoluteReport feeds a Raw variant back-end that only has
// absolute coordinates on the wire (X11 raw motion events carry the
// pointer's absolute root position, not a delta): it diffs against the
// tracked baseline and accumulates the result the same way
// HandleRelativeDelta does. Warp must be called whenever the caller also
// warps the OS pointer, or the next report reads back as a spurious
// jump.
func (m *Mouse) HandleAbsoluteReport(x, y float32, ds *gainput.DeltaState) {
	m.mu.Lock()
	if !m.haveBaseline {
		m.prevAbsX, m.prevAbsY = x, y
		m.haveBaseline = true
		m.mu.Unlock()
		return
	}
	dx, dy := x-m.prevAbsX, y-m.prevAbsY
	m.prevAbsX, m.prevAbsY = x, y
	m.mu.Unlock()
	m.HandleRelativeDelta(dx, dy, ds)
}

// Warp resets the Raw baseline to (x, y) so a programmatic pointer move
// does not get read back as motion on the next absolute report.
func (m *Mouse) Warp(x, y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prevAbsX, m.prevAbsY = x, y
	m.haveBaseline = true
}

// HandleWheelAccum feeds the running wheel-notch total some back-ends
// (Win32) expose as a float alongside the discrete tick buttons.
func (m *Mouse) HandleWheelAccum(delta float32, ds *gainput.DeltaState) {
	id := gainput.DeviceButtonID(AxisWheelAccum)
	m.mu.Lock()
	old := m.next.GetFloat(id)
	newV := old + delta
	m.next.SetFloat(id, newV)
	m.mu.Unlock()
	ds.RecordFloat(m.id, id, old, newV)
}

// ClearAllStates forces every button and axis back to zero, used when a
// window loses focus.
func (m *Mouse) ClearAllStates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Clear()
	m.next.Clear()
}
