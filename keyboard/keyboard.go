// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package keyboard

import (
	"sync"

	"github.com/galvanized/gainput"
)

// Keyboard is a keyboard device. Unlike a pad it is never in
// DeviceStateUnavailable — it is constructed already bound, since every
// platform this library targets has exactly one logical keyboard — but
// it still goes through the manager's normal RegisterDevice path so it
// receives a DeviceID like any other device.
type Keyboard struct {
	mu sync.Mutex

	index   int
	id      gainput.DeviceID
	variant gainput.DeviceVariant
	synced  bool // true: fed via the concurrent queue (Android/iOS), skipped by platform dispatch

	current *gainput.InputState
	next    *gainput.InputState

	textEnabled bool
	textCap     int
	text        []rune

	// platformHandler is installed by the compiled-in platform backend
	// (keyboard_windows.go, keyboard_darwin.go); the manager's opaque
	// event entry points reach it through HandleEvent/HandleMessage.
	platformHandler func(event any, ds *gainput.DeltaState)
}

// NewKeyboard allocates a keyboard device. textQueueLen bounds the
// per-tick text-input queue (Config.TextInputQueueLength); synced is
// true for back-ends whose events arrive through the concurrent queue
// (a thread other than the input thread), false for back-ends fed
// directly by the platform entry points.
func NewKeyboard(index, textQueueLen int, synced bool) *Keyboard {
	return &Keyboard{
		index:       index,
		variant:     gainput.VariantStandard,
		synced:      synced,
		current:     gainput.NewInputState(KeyCount, 0),
		next:        gainput.NewInputState(KeyCount, 0),
		textEnabled: true,
		textCap:     textQueueLen,
	}
}

// SetID records the id the manager minted at registration time.
func (k *Keyboard) SetID(id gainput.DeviceID) { k.id = id }

func (k *Keyboard) DeviceID() gainput.DeviceID     { return k.id }
func (k *Keyboard) DeviceType() gainput.DeviceType { return gainput.DeviceTypeKeyboard }
func (k *Keyboard) Variant() gainput.DeviceVariant { return k.variant }
func (k *Keyboard) Index() int                     { return k.index }
func (k *Keyboard) State() gainput.DeviceState      { return gainput.DeviceStateOK }
func (k *Keyboard) DeviceName() string              { return "keyboard" }

func (k *Keyboard) IsValidButton(id gainput.DeviceButtonID) bool {
	return id >= 0 && int(id) < KeyCount
}
func (k *Keyboard) ButtonType(gainput.DeviceButtonID) gainput.ButtonType { return gainput.ButtonTypeBool }
func (k *Keyboard) ButtonName(id gainput.DeviceButtonID) string          { return KeyName(Key(id)) }
func (k *Keyboard) ButtonByName(name string) (gainput.DeviceButtonID, bool) {
	key, ok := KeyByName(name)
	return gainput.DeviceButtonID(key), ok
}

func (k *Keyboard) GetBool(id gainput.DeviceButtonID) bool { return k.current.GetBool(id) }
func (k *Keyboard) GetFloat(gainput.DeviceButtonID) float32 { return 0 }

func (k *Keyboard) AnyButtonDown(out []gainput.DeviceButtonID) int {
	n := 0
	for i := 0; i < KeyCount && n < len(out); i++ {
		if k.current.GetBool(gainput.DeviceButtonID(i)) {
			out[n] = gainput.DeviceButtonID(i)
			n++
		}
	}
	return n
}

func (k *Keyboard) IsLateUpdate() bool { return false }
func (k *Keyboard) IsSynced() bool     { return k.synced }

// Update commits next into current and clears the text-input queue —
// text accumulated during the tick is visible to GetTextInput up until
// this point, matching scenario S1 ("on the same tick before update,
// get_text_input() == 'Hi'; after update, text buffer empty").
func (k *Keyboard) Update(ds *gainput.DeltaState) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.current.CopyFrom(k.next)
	k.text = k.text[:0]
}

// HandleKey records a key transition into next, recording the delta if
// listeners exist.
func (k *Keyboard) HandleKey(key Key, down bool, ds *gainput.DeltaState) {
	id := gainput.DeviceButtonID(key)
	k.mu.Lock()
	old := k.next.GetBool(id)
	k.next.SetBool(id, down)
	k.mu.Unlock()
	ds.RecordBool(k.id, id, old, down)
}

// SetPlatformHandler installs the event translator the manager's opaque
// platform entry points dispatch to; backend constructors call this.
func (k *Keyboard) SetPlatformHandler(fn func(event any, ds *gainput.DeltaState)) {
	k.platformHandler = fn
}

// HandleEvent receives an opaque X11/AppKit event from the manager's
// HandleEvent dispatch and forwards it to the installed backend.
func (k *Keyboard) HandleEvent(event any, ds *gainput.DeltaState) {
	if k.platformHandler != nil {
		k.platformHandler(event, ds)
	}
}

// HandleMessage receives an opaque Win32 message from the manager's
// HandleMessage dispatch.
func (k *Keyboard) HandleMessage(msg any, ds *gainput.DeltaState) {
	if k.platformHandler != nil {
		k.platformHandler(msg, ds)
	}
}

// HandleButtonBool is the concurrent-queue entry point (Android/iOS).
func (k *Keyboard) HandleButtonBool(button gainput.DeviceButtonID, value bool, ds *gainput.DeltaState) {
	k.HandleKey(Key(button), value, ds)
}

// HandleText appends r to the per-tick text queue if text input is
// enabled, truncating silently once textCap is reached
// (TextBufferOverflow, per spec §7: never fatal).
func (k *Keyboard) HandleText(r rune) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.textEnabled || (k.textCap > 0 && len(k.text) >= k.textCap) {
		return
	}
	k.text = append(k.text, r)
}

// SetTextInputEnabled toggles whether printable keypresses feed the text
// queue at all.
func (k *Keyboard) SetTextInputEnabled(enabled bool) {
	k.mu.Lock()
	k.textEnabled = enabled
	k.mu.Unlock()
}

// GetTextInput returns the text accumulated so far this tick.
func (k *Keyboard) GetTextInput() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.text)
}

// ClearAllStates zeroes every key on both next and current, used when a
// window loses focus and every held key must be forced up.
func (k *Keyboard) ClearAllStates() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.current.Clear()
	k.next.Clear()
	k.text = k.text[:0]
}
