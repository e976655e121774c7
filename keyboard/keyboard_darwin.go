// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build darwin && !ios

package keyboard

import "github.com/galvanized/gainput"

// Event is the opaque macOS keyboard event blob HandleEvent accepts: the
// subset of an NSEvent the keyboard back-end needs, translated by the
// caller's own AppKit event loop (this core never owns the window, per
// the window-system-glue Non-goal).
type Event struct {
	KeyCode    uint16 // NSEvent.keyCode
	Characters string // NSEvent.characters, empty for a key-up
	IsKeyDown  bool
	IsRepeat   bool
}

// nsKeyCodeToKey maps the fixed virtual keycodes AppKit reports
// (NSEvent.h's kVK_* constants) to the canonical Key space.
var nsKeyCodeToKey = map[uint16]Key{
	0x00: KeyA, 0x0B: KeyB, 0x08: KeyC, 0x02: KeyD, 0x0E: KeyE, 0x03: KeyF, 0x05: KeyG,
	0x04: KeyH, 0x22: KeyI, 0x26: KeyJ, 0x28: KeyK, 0x25: KeyL, 0x2E: KeyM, 0x2D: KeyN,
	0x1F: KeyO, 0x23: KeyP, 0x0C: KeyQ, 0x0F: KeyR, 0x01: KeyS, 0x11: KeyT, 0x20: KeyU,
	0x09: KeyV, 0x0D: KeyW, 0x07: KeyX, 0x10: KeyY, 0x06: KeyZ,
	0x1D: Key0, 0x12: Key1, 0x13: Key2, 0x14: Key3, 0x15: Key4, 0x17: Key5,
	0x16: Key6, 0x1A: Key7, 0x1C: Key8, 0x19: Key9,
	0x24: KeyReturn, 0x30: KeyTab, 0x31: KeySpace, 0x33: KeyBackspace, 0x35: KeyEscape,
	0x75: KeyDelete, 0x73: KeyHome, 0x77: KeyEnd, 0x74: KeyPageUp, 0x79: KeyPageDown,
	0x72: KeyInsert,
	0x38: KeyLeftShift, 0x3C: KeyRightShift, 0x3B: KeyLeftControl, 0x3E: KeyRightControl,
	0x3A: KeyLeftAlt, 0x3D: KeyRightAlt, 0x37: KeyLeftSuper, 0x36: KeyRightSuper,
	0x39: KeyCapsLock,
	0x7E: KeyUp, 0x7D: KeyDown, 0x7B: KeyLeft, 0x7C: KeyRight,
	0x1B: KeyMinus, 0x18: KeyEqual, 0x21: KeyLeftBracket, 0x1E: KeyRightBracket,
	0x2A: KeyBackslash, 0x29: KeySemicolon, 0x27: KeyQuote, 0x32: KeyGrave,
	0x2B: KeyComma, 0x2F: KeyPeriod, 0x2C: KeySlash,
	0x52: KeyKp0, 0x53: KeyKp1, 0x54: KeyKp2, 0x55: KeyKp3, 0x56: KeyKp4, 0x57: KeyKp5,
	0x58: KeyKp6, 0x59: KeyKp7, 0x5B: KeyKp8, 0x5C: KeyKp9,
	0x41: KeyKpDecimal, 0x4B: KeyKpDivide, 0x43: KeyKpMultiply,
	0x4E: KeyKpSubtract, 0x45: KeyKpAdd, 0x4C: KeyKpEnter,
	0x7A: KeyF1, 0x78: KeyF2, 0x63: KeyF3, 0x76: KeyF4, 0x60: KeyF5, 0x61: KeyF6,
	0x62: KeyF7, 0x64: KeyF8, 0x65: KeyF9, 0x6D: KeyF10, 0x67: KeyF11, 0x6F: KeyF12,
}

// DarwinBackend translates AppKit key events; it assumes the caller's
// event loop and the manager's Update both run on the main thread (the
// common AppKit case), so it writes directly into the keyboard's next
// state rather than the concurrent queue.
type DarwinBackend struct {
	kb *Keyboard
}

// NewDarwinBackend returns a backend bound to kb and installs itself as
// kb's platform handler, so the manager's HandleEvent dispatch reaches it.
func NewDarwinBackend(kb *Keyboard) *DarwinBackend {
	b := &DarwinBackend{kb: kb}
	kb.SetPlatformHandler(b.HandleEvent)
	return b
}

// HandleEvent translates one NSEvent-derived Event into a key transition
// and, for key-down events carrying printable characters, a text-queue
// append.
func (b *DarwinBackend) HandleEvent(event any, ds *gainput.DeltaState) {
	e, ok := event.(Event)
	if !ok || e.IsRepeat {
		return
	}
	key, ok := nsKeyCodeToKey[e.KeyCode]
	if !ok {
		return
	}
	b.kb.HandleKey(key, e.IsKeyDown, ds)
	if e.IsKeyDown {
		for _, r := range e.Characters {
			b.kb.HandleText(r)
		}
	}
}
