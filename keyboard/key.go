// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package keyboard implements the keyboard device back-ends: a single
// canonical Key space shared by every platform dialect, a text-input
// queue fed by printable keypresses, and per-platform translators
// (evdev on Linux, Win32 VK_* codes on Windows, a native-framework
// facade on Apple, and a concurrent-queue-fed façade for Android/iOS).
package keyboard

import "github.com/galvanized/gainput"

// Key is the canonical keyboard button space. Every Key is boolean —
// keyboards expose no axes — so ButtonType always reports
// gainput.ButtonTypeBool for a valid Key.
type Key gainput.DeviceButtonID

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper
	KeyCapsLock
	KeyNumLock
	KeyScrollLock

	KeySpace
	KeyReturn
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyPrintScreen
	KeyPause

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyComma
	KeyPeriod
	KeySlash
	KeyGrave

	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDecimal
	KeyKpDivide
	KeyKpMultiply
	KeyKpSubtract
	KeyKpAdd
	KeyKpEnter
	KeyKpEqual

	KeyMediaVolumeUp
	KeyMediaVolumeDown
	KeyMediaMute
	KeyMediaPlayPause
	KeyMediaNextTrack
	KeyMediaPrevTrack

	// keyCount is not itself a key; it sizes every keyboard's bool state.
	keyCount
)

// KeyCount sizes the bool InputState every Keyboard allocates.
const KeyCount = int(keyCount)

var keyNames = map[Key]string{
	Key0: "Key0", Key1: "Key1", Key2: "Key2", Key3: "Key3", Key4: "Key4",
	Key5: "Key5", Key6: "Key6", Key7: "Key7", Key8: "Key8", Key9: "Key9",

	KeyA: "KeyA", KeyB: "KeyB", KeyC: "KeyC", KeyD: "KeyD", KeyE: "KeyE",
	KeyF: "KeyF", KeyG: "KeyG", KeyH: "KeyH", KeyI: "KeyI", KeyJ: "KeyJ",
	KeyK: "KeyK", KeyL: "KeyL", KeyM: "KeyM", KeyN: "KeyN", KeyO: "KeyO",
	KeyP: "KeyP", KeyQ: "KeyQ", KeyR: "KeyR", KeyS: "KeyS", KeyT: "KeyT",
	KeyU: "KeyU", KeyV: "KeyV", KeyW: "KeyW", KeyX: "KeyX", KeyY: "KeyY",
	KeyZ: "KeyZ",

	KeyF1: "KeyF1", KeyF2: "KeyF2", KeyF3: "KeyF3", KeyF4: "KeyF4",
	KeyF5: "KeyF5", KeyF6: "KeyF6", KeyF7: "KeyF7", KeyF8: "KeyF8",
	KeyF9: "KeyF9", KeyF10: "KeyF10", KeyF11: "KeyF11", KeyF12: "KeyF12",
	KeyF13: "KeyF13", KeyF14: "KeyF14", KeyF15: "KeyF15", KeyF16: "KeyF16",
	KeyF17: "KeyF17", KeyF18: "KeyF18", KeyF19: "KeyF19", KeyF20: "KeyF20",

	KeyLeftShift: "KeyLeftShift", KeyRightShift: "KeyRightShift",
	KeyLeftControl: "KeyLeftControl", KeyRightControl: "KeyRightControl",
	KeyLeftAlt: "KeyLeftAlt", KeyRightAlt: "KeyRightAlt",
	KeyLeftSuper: "KeyLeftSuper", KeyRightSuper: "KeyRightSuper",
	KeyCapsLock: "KeyCapsLock", KeyNumLock: "KeyNumLock", KeyScrollLock: "KeyScrollLock",

	KeySpace: "KeySpace", KeyReturn: "KeyReturn", KeyTab: "KeyTab",
	KeyBackspace: "KeyBackspace", KeyDelete: "KeyDelete", KeyEscape: "KeyEscape",
	KeyInsert: "KeyInsert", KeyHome: "KeyHome", KeyEnd: "KeyEnd",
	KeyPageUp: "KeyPageUp", KeyPageDown: "KeyPageDown",
	KeyPrintScreen: "KeyPrintScreen", KeyPause: "KeyPause",

	KeyUp: "KeyUp", KeyDown: "KeyDown", KeyLeft: "KeyLeft", KeyRight: "KeyRight",

	KeyMinus: "KeyMinus", KeyEqual: "KeyEqual",
	KeyLeftBracket: "KeyLeftBracket", KeyRightBracket: "KeyRightBracket",
	KeyBackslash: "KeyBackslash", KeySemicolon: "KeySemicolon", KeyQuote: "KeyQuote",
	KeyComma: "KeyComma", KeyPeriod: "KeyPeriod", KeySlash: "KeySlash", KeyGrave: "KeyGrave",

	KeyKp0: "KeyKp0", KeyKp1: "KeyKp1", KeyKp2: "KeyKp2", KeyKp3: "KeyKp3",
	KeyKp4: "KeyKp4", KeyKp5: "KeyKp5", KeyKp6: "KeyKp6", KeyKp7: "KeyKp7",
	KeyKp8: "KeyKp8", KeyKp9: "KeyKp9", KeyKpDecimal: "KeyKpDecimal",
	KeyKpDivide: "KeyKpDivide", KeyKpMultiply: "KeyKpMultiply",
	KeyKpSubtract: "KeyKpSubtract", KeyKpAdd: "KeyKpAdd", KeyKpEnter: "KeyKpEnter",
	KeyKpEqual: "KeyKpEqual",

	KeyMediaVolumeUp: "KeyMediaVolumeUp", KeyMediaVolumeDown: "KeyMediaVolumeDown",
	KeyMediaMute: "KeyMediaMute", KeyMediaPlayPause: "KeyMediaPlayPause",
	KeyMediaNextTrack: "KeyMediaNextTrack", KeyMediaPrevTrack: "KeyMediaPrevTrack",
}

var namesToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, n := range keyNames {
		m[n] = k
	}
	return m
}()

// KeyName returns the stable ABI name for k, or "" if k is unknown.
func KeyName(k Key) string { return keyNames[k] }

// KeyByName resolves a stable ABI name back to a Key.
func KeyByName(name string) (Key, bool) {
	k, ok := namesToKey[name]
	return k, ok
}
