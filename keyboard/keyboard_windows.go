// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build windows

package keyboard

import (
	"github.com/galvanized/gainput"
	"golang.org/x/text/encoding/unicode"
)

// Message IDs this backend inspects, per spec §6's Win32 entry point
// table: WM_KEYDOWN, WM_KEYUP, WM_SYSKEYDOWN, WM_SYSKEYUP, WM_CHAR. The
// core never owns the window, so callers forward their own win32
// message loop's values into Message rather than this package reading
// an MSG struct directly.
const (
	WMKeyDown    = 0x0100
	WMKeyUp      = 0x0101
	WMSysKeyDown = 0x0104
	WMSysKeyUp   = 0x0105
	WMChar       = 0x0102
)

// Message is the opaque Win32 event blob HandleMessage accepts: the
// subset of an MSG the keyboard back-end needs, with wParam/lParam
// carried as uintptr exactly as the caller's message loop received them.
type Message struct {
	ID     uint32
	WParam uintptr
	LParam uintptr
}

// extendedKeyFlag is lParam bit 24 (RI_KEY_E0 in RAWINPUT terms, carried
// the same way in a plain WM_KEYDOWN/UP lParam): set for the right-hand
// Ctrl/Alt and several navigation keys that alias numpad scan codes.
const extendedKeyFlag = 1 << 24

// scanCode extracts lParam bits 16-23, the hardware scan code WM_*
// messages carry alongside the virtual-key code.
func scanCode(lParam uintptr) uint8 { return uint8((lParam >> 16) & 0xFF) }
func isExtended(lParam uintptr) bool { return lParam&extendedKeyFlag != 0 }

// rightShiftScanCode is the hardware MakeCode the spec calls out by value
// (0x36) to distinguish right Shift from left Shift — both report
// VK_SHIFT (0x10) in wParam with no extended-key bit of their own.
const rightShiftScanCode = 0x36

// vk* are the Win32 virtual-key codes this dialect understands, matching
// the teacher engine's own os_windows.go VK_* table (MSDN
// Virtual-Key-Codes), reused here instead of its cgo-wrapped native layer.
const (
	vk0 = 0x30
	vkA = 0x41

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12 // Alt
	vkLWin    = 0x5B
	vkRWin    = 0x5C
	vkCapital = 0x14
	vkNumLock = 0x90
	vkScroll  = 0x91

	vkF1 = 0x70

	vkSpace      = 0x20
	vkReturn     = 0x0D
	vkTab        = 0x09
	vkBack       = 0x08
	vkDelete     = 0x2E
	vkEscape     = 0x1B
	vkInsert     = 0x2D
	vkHome       = 0x24
	vkEnd        = 0x23
	vkPrior      = 0x21 // page up
	vkNext       = 0x22 // page down
	vkSnapshot   = 0x2C
	vkPause      = 0x13

	vkUp    = 0x26
	vkDown  = 0x28
	vkLeft  = 0x25
	vkRight = 0x27

	vkOEMMinus  = 0xBD
	vkOEMPlus   = 0xBB
	vkOEM4      = 0xDB // [
	vkOEM6      = 0xDD // ]
	vkOEM5      = 0xDC // backslash
	vkOEM1      = 0xBA // ;
	vkOEM7      = 0xDE // '
	vkOEM3      = 0xC0 // `
	vkOEMComma  = 0xBC
	vkOEMPeriod = 0xBE
	vkOEM2      = 0xBF // /

	vkNumpad0  = 0x60
	vkDecimal  = 0x6E
	vkDivide   = 0x6F
	vkMultiply = 0x6A
	vkSubtract = 0x6D
	vkAdd      = 0x6B

	vkVolumeMute = 0xAD
	vkVolumeDown = 0xAE
	vkVolumeUp   = 0xAF
	vkMediaNext  = 0xB0
	vkMediaPrev  = 0xB1
	vkMediaPlay  = 0xB3
)

var vkToKey = map[uint8]Key{
	vkSpace: KeySpace, vkReturn: KeyReturn, vkTab: KeyTab, vkBack: KeyBackspace,
	vkDelete: KeyDelete, vkEscape: KeyEscape, vkInsert: KeyInsert, vkHome: KeyHome,
	vkEnd: KeyEnd, vkPrior: KeyPageUp, vkNext: KeyPageDown, vkSnapshot: KeyPrintScreen,
	vkPause: KeyPause, vkUp: KeyUp, vkDown: KeyDown, vkLeft: KeyLeft, vkRight: KeyRight,
	vkOEMMinus: KeyMinus, vkOEMPlus: KeyEqual, vkOEM4: KeyLeftBracket, vkOEM6: KeyRightBracket,
	vkOEM5: KeyBackslash, vkOEM1: KeySemicolon, vkOEM7: KeyQuote, vkOEM3: KeyGrave,
	vkOEMComma: KeyComma, vkOEMPeriod: KeyPeriod, vkOEM2: KeySlash,
	vkCapital: KeyCapsLock, vkNumLock: KeyNumLock, vkScroll: KeyScrollLock,
	vkVolumeMute: KeyMediaMute, vkVolumeDown: KeyMediaVolumeDown, vkVolumeUp: KeyMediaVolumeUp,
	vkMediaNext: KeyMediaNextTrack, vkMediaPrev: KeyMediaPrevTrack, vkMediaPlay: KeyMediaPlayPause,
}

var numpadToKey = map[uint8]Key{
	0x60: KeyKp0, 0x61: KeyKp1, 0x62: KeyKp2, 0x63: KeyKp3, 0x64: KeyKp4,
	0x65: KeyKp5, 0x66: KeyKp6, 0x67: KeyKp7, 0x68: KeyKp8, 0x69: KeyKp9,
	vkDecimal: KeyKpDecimal, vkDivide: KeyKpDivide, vkMultiply: KeyKpMultiply,
	vkSubtract: KeyKpSubtract, vkAdd: KeyKpAdd,
}

func translateVK(vk uint8, scan uint8, extended bool) (Key, bool) {
	switch {
	case vk >= vk0 && vk <= vk0+9:
		return Key0 + Key(vk-vk0), true
	case vk >= vkA && vk <= vkA+25:
		return KeyA + Key(vk-vkA), true
	case vk >= vkF1 && vk <= vkF1+11: // F1..F12
		return KeyF1 + Key(vk-vkF1), true
	case vk == vkShift:
		if scan == rightShiftScanCode {
			return KeyRightShift, true
		}
		return KeyLeftShift, true
	case vk == vkControl:
		if extended {
			return KeyRightControl, true
		}
		return KeyLeftControl, true
	case vk == vkMenu:
		if extended {
			return KeyRightAlt, true
		}
		return KeyLeftAlt, true
	case vk == vkLWin:
		return KeyLeftSuper, true
	case vk == vkRWin:
		return KeyRightSuper, true
	case vk == vkReturn && extended:
		return KeyKpEnter, true
	}
	if k, ok := numpadToKey[vk]; ok {
		return k, true
	}
	if k, ok := vkToKey[vk]; ok {
		return k, true
	}
	return 0, false
}

// utf16Decoder incrementally decodes WM_CHAR code units (one per
// message, possibly a UTF-16 surrogate pair split across two messages)
// into runes using golang.org/x/text's UTF-16 codec instead of
// hand-rolled surrogate arithmetic.
type utf16Decoder struct {
	pending []byte
}

func (d *utf16Decoder) decode(unit uint16) (rune, bool) {
	var b [2]byte
	b[0], b[1] = byte(unit), byte(unit>>8)
	d.pending = append(d.pending, b[0], b[1])
	if unit >= 0xD800 && unit <= 0xDBFF && len(d.pending) == 2 {
		return 0, false // high surrogate: wait for its low half
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(d.pending)
	d.pending = d.pending[:0]
	if err != nil || len(out) == 0 {
		return 0, false
	}
	r := []rune(string(out))
	if len(r) == 0 {
		return 0, false
	}
	return r[0], true
}

// WindowsBackend translates WM_KEYDOWN/UP/SYSKEYDOWN/UP and WM_CHAR
// messages into canonical Key transitions and text-queue appends.
type WindowsBackend struct {
	kb  *Keyboard
	dec utf16Decoder
}

// NewWindowsBackend returns a backend bound to kb and installs itself as
// kb's platform handler, so the manager's HandleMessage dispatch reaches
// it; callers forwarding their own message loop may also call
// HandleMessage directly.
func NewWindowsBackend(kb *Keyboard) *WindowsBackend {
	b := &WindowsBackend{kb: kb}
	kb.SetPlatformHandler(b.HandleMessage)
	return b
}

// HandleMessage routes msg if it is one of the keyboard message ids;
// other ids are ignored, matching the manager's best-effort dispatch
// contract.
func (b *WindowsBackend) HandleMessage(msg any, ds *gainput.DeltaState) {
	m, ok := msg.(Message)
	if !ok {
		return
	}
	switch m.ID {
	case WMKeyDown, WMSysKeyDown, WMKeyUp, WMSysKeyUp:
		down := m.ID == WMKeyDown || m.ID == WMSysKeyDown
		vk := uint8(m.WParam)
		scan := scanCode(m.LParam)
		extended := isExtended(m.LParam)
		if key, ok := translateVK(vk, scan, extended); ok {
			b.kb.HandleKey(key, down, ds)
		}
	case WMChar:
		if r, ok := b.dec.decode(uint16(m.WParam)); ok {
			b.kb.HandleText(r)
		}
	}
}
