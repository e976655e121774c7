// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"sync"

	"github.com/galvanized/gainput"
)

// Backend is implemented by the per-platform enumeration code
// (pad_linux.go, pad_windows.go, pad_hid.go, and the no-op backends in
// pool.go and pad_null.go). A Pad polls
// or is pushed events by its backend but never imports it directly — the
// backend is injected so pad.go stays platform-agnostic.
type Backend interface {
	// CheckConnection probes hardware presence; called on the manager's
	// connection-probe cadence. Implementations call Pad.Bind/Unbind as
	// appropriate.
	CheckConnection()
}

// Pad is a single pad slot: one of the pre-allocated, fixed-count pool
// created by NewPool. It starts in
// gainput.DeviceStateUnavailable and flips to OK only once a backend
// successfully binds it to real hardware.
type Pad struct {
	mu sync.Mutex

	index   int
	variant gainput.DeviceVariant
	id      gainput.DeviceID
	state   gainput.DeviceState

	dialect *Dialect

	current *gainput.InputState
	next    *gainput.InputState

	deadzone float32

	backend Backend
	rumble  *RumbleWorker
	hid     HIDHandle

	onBind   func(p *Pad)              // manager hook: mint id + register
	onUnbind func(id gainput.DeviceID) // manager hook: retire id + remove

	// enqueueBool/enqueueFloat route changes produced off the input
	// thread (the HID read goroutine) through the manager's concurrent
	// queue instead of writing next state directly; nil until the pool
	// wires them.
	enqueueBool  func(id gainput.DeviceID, button gainput.DeviceButtonID, value bool)
	enqueueFloat func(id gainput.DeviceID, button gainput.DeviceButtonID, value float32)

	lateUpdate bool
}

// NewPad allocates an unbound pad slot. onBind is called once the pad
// resolves to real hardware, and must register the pad with the manager
// and call SetID with the freshly minted id.
func NewPad(index int, variant gainput.DeviceVariant, deadzone float32, onBind func(p *Pad)) *Pad {
	return &Pad{
		index:    index,
		variant:  variant,
		state:    gainput.DeviceStateUnavailable,
		current:  gainput.NewInputState(ButtonCount, AxisAllocCount),
		next:     gainput.NewInputState(ButtonCount, AxisAllocCount),
		deadzone: deadzone,
		onBind:   onBind,
	}
}

// SetID records the id the manager minted for this pad at bind time.
func (p *Pad) SetID(id gainput.DeviceID) { p.id = id }

// Bind transitions the pad from Unavailable/Resolving into OK, installing
// the resolved dialect and HID handle (hid may be nil on backends with no
// rumble/LED support) and notifying the manager via onBind.
func (p *Pad) Bind(dialect *Dialect, hid HIDHandle) {
	p.mu.Lock()
	p.dialect = dialect
	p.hid = hid
	p.state = gainput.DeviceStateOK
	p.mu.Unlock()
	if p.onBind != nil {
		p.onBind(p)
	}
}

// Unbind transitions the pad back to Unavailable; the manager retires
// its id and removes it from the registry but the Pad object itself
// stays in the pool for a future connect.
func (p *Pad) Unbind() {
	p.mu.Lock()
	id := p.id
	unbind := p.onUnbind
	p.state = gainput.DeviceStateUnavailable
	p.id = gainput.InvalidDeviceID
	p.dialect = nil
	p.hid = nil
	p.mu.Unlock()
	if unbind != nil && id != gainput.InvalidDeviceID {
		unbind(id)
	}
}

// SetOnUnbind installs the manager hook fired when the pad loses its
// hardware binding, so the device can be retired from the registry; set
// once by the pool constructor, which is why it is not a NewPad
// parameter — onBind's closure needs the pad pointer Go hasn't finished
// constructing yet at that point, but onUnbind only needs the id.
func (p *Pad) SetOnUnbind(fn func(id gainput.DeviceID)) { p.onUnbind = fn }

func (p *Pad) DeviceID() gainput.DeviceID     { return p.id }
func (p *Pad) DeviceType() gainput.DeviceType { return gainput.DeviceTypePad }
func (p *Pad) Variant() gainput.DeviceVariant { return p.variant }
func (p *Pad) Index() int                     { return p.index }
func (p *Pad) State() gainput.DeviceState     { return p.state }
func (p *Pad) DeviceName() string {
	if p.dialect != nil {
		return p.dialect.Name
	}
	return "pad"
}

func (p *Pad) IsValidButton(id gainput.DeviceButtonID) bool {
	return id >= 0 && int(id) < AxisAllocCount
}

func (p *Pad) ButtonType(id gainput.DeviceButtonID) gainput.ButtonType {
	return ButtonType(Button(id))
}

func (p *Pad) ButtonName(id gainput.DeviceButtonID) string { return ButtonName(Button(id)) }

func (p *Pad) ButtonByName(name string) (gainput.DeviceButtonID, bool) {
	b, ok := ButtonByName(name)
	return gainput.DeviceButtonID(b), ok
}

func (p *Pad) GetBool(id gainput.DeviceButtonID) bool     { return p.current.GetBool(id) }
func (p *Pad) GetFloat(id gainput.DeviceButtonID) float32 { return p.current.GetFloat(id) }

func (p *Pad) AnyButtonDown(out []gainput.DeviceButtonID) int {
	n := 0
	for i := 0; i < ButtonCount && n < len(out); i++ {
		if p.current.GetBool(gainput.DeviceButtonID(i)) {
			out[n] = gainput.DeviceButtonID(i)
			n++
		}
	}
	return n
}

func (p *Pad) IsLateUpdate() bool { return p.lateUpdate }
func (p *Pad) IsSynced() bool     { return true } // fed via the concurrent queue or a polling tick hook

// Update commits next into current. Pads have no per-tick bookkeeping
// beyond the publish step: dead-zone application and hat decoding happen
// when the raw report is translated, not here.
func (p *Pad) Update(ds *gainput.DeltaState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current.CopyFrom(p.next)
}

// HandleButtonBool applies a raw button transition translated by a
// backend, recording the delta if listeners exist.
func (p *Pad) HandleButtonBool(button gainput.DeviceButtonID, value bool, ds *gainput.DeltaState) {
	p.mu.Lock()
	old := p.next.GetBool(button)
	p.next.SetBool(button, value)
	p.mu.Unlock()
	ds.RecordBool(p.id, button, old, value)
}

// HandleButtonFloat applies a raw axis transition. Stick axes (not
// triggers) go through the dialect's dead-zone as a pair — callers should
// prefer HandleStickPair for sticks; this entry point is for triggers and
// any axis not subject to dead-zoning.
func (p *Pad) HandleButtonFloat(button gainput.DeviceButtonID, value float32, ds *gainput.DeltaState) {
	p.mu.Lock()
	old := p.next.GetFloat(button)
	p.next.SetFloat(button, value)
	p.mu.Unlock()
	ds.RecordFloat(p.id, button, old, value)
}

// HandleStickPair applies a dead-zoned (x,y) stick update atomically, as
// required by the scaled-radial dead-zone's "both axes updated
// atomically" rule.
func (p *Pad) HandleStickPair(xButton, yButton gainput.DeviceButtonID, rawX, rawY float32, ds *gainput.DeltaState) {
	dz := p.deadzone
	if p.dialect != nil {
		dz = p.dialect.StickDeadzone
	}
	x, y := ApplyStickDeadzone(rawX, rawY, dz)
	p.HandleButtonFloat(xButton, x, ds)
	p.HandleButtonFloat(yButton, y, ds)
}

// Vibrate issues a synchronous, one-shot, no-duration rumble command.
// The report is written on the caller's goroutine, not queued to the
// rumble worker; it is a no-op when no HID handle is attached.
func (p *Pad) Vibrate(left, right float32) {
	if p.hid != nil {
		report := XboxOneBTReport(left, right, 0)
		_ = p.hid.WriteOutputReport(report[:])
	}
}

// SetRumbleEffect queues a timed effect to the worker. Returns an error
// only if no rumble worker/HID handle is attached to this pad.
func (p *Pad) SetRumbleEffect(left, right float32, durationMS uint32) error {
	if p.rumble == nil || p.hid == nil {
		return errNoRumbleSupport
	}
	p.rumble.Enqueue(RumbleEffect{Left: left, Right: right, DurationMS: durationMS, Handle: p.hid})
	return nil
}

// SetLEDColor writes the PlayStation-family LED report directly (not
// queued through the rumble worker, since it has no duration to expire).
func (p *Pad) SetLEDColor(r, g, b byte) {
	if p.hid == nil {
		return
	}
	report := PS4LEDReport(0, 0, r, g, b)
	_ = p.hid.WriteOutputReport(report[:])
}

// CheckConnection delegates to the installed backend.
func (p *Pad) CheckConnection() {
	if p.backend != nil {
		p.backend.CheckConnection()
	}
}

// SetBackend installs the per-platform enumeration backend and an
// optional rumble worker once the manager has constructed them.
func (p *Pad) SetBackend(b Backend, rumble *RumbleWorker) {
	p.backend = b
	p.rumble = rumble
}

// SetEnqueue installs the manager's thread-safe change producers. Once
// set, EnqueueButtonBool/Float and EnqueueStickPair hand changes to the
// manager's concurrent queue; until then they fall back to writing next
// state directly, which is only safe for single-threaded back-ends.
func (p *Pad) SetEnqueue(
	boolFn func(id gainput.DeviceID, button gainput.DeviceButtonID, value bool),
	floatFn func(id gainput.DeviceID, button gainput.DeviceButtonID, value float32),
) {
	p.enqueueBool = boolFn
	p.enqueueFloat = floatFn
}

// EnqueueButtonBool is the producer-side counterpart to HandleButtonBool
// for back-ends running on their own goroutine: the change crosses into
// the tick via the manager's concurrent queue, so the delta is recorded
// on drain with the tick's own DeltaState.
func (p *Pad) EnqueueButtonBool(button gainput.DeviceButtonID, value bool) {
	p.mu.Lock()
	id, fn := p.id, p.enqueueBool
	p.mu.Unlock()
	if fn != nil && id != gainput.InvalidDeviceID {
		fn(id, button, value)
		return
	}
	p.HandleButtonBool(button, value, nil)
}

// EnqueueButtonFloat is the float counterpart to EnqueueButtonBool.
func (p *Pad) EnqueueButtonFloat(button gainput.DeviceButtonID, value float32) {
	p.mu.Lock()
	id, fn := p.id, p.enqueueFloat
	p.mu.Unlock()
	if fn != nil && id != gainput.InvalidDeviceID {
		fn(id, button, value)
		return
	}
	p.HandleButtonFloat(button, value, nil)
}

// EnqueueStickPair dead-zones the (x,y) pair on the producer side, then
// enqueues both axes back to back so the consumer applies them in order
// within one drain.
func (p *Pad) EnqueueStickPair(xButton, yButton gainput.DeviceButtonID, rawX, rawY float32) {
	dz := p.deadzone
	if p.dialect != nil {
		dz = p.dialect.StickDeadzone
	}
	x, y := ApplyStickDeadzone(rawX, rawY, dz)
	p.EnqueueButtonFloat(xButton, x)
	p.EnqueueButtonFloat(yButton, y)
}

var errNoRumbleSupport = rumbleUnsupportedError{}

type rumbleUnsupportedError struct{}

func (rumbleUnsupportedError) Error() string { return "pad: no rumble/HID handle attached" }
