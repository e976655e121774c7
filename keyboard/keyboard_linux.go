// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package keyboard

import (
	"os"
	"path/filepath"
	"regexp"
	"unsafe"

	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const evdevDir = "/dev/input"

var reEvdevNode = regexp.MustCompile(`^event[0-9]+$`)

const (
	evKey = 0x01

	iocRead   = 2
	iocNRBits = 8
	iocTBits  = 8
	iocSBits  = 14
	iocNRSft  = 0
	iocTSft   = iocNRSft + iocNRBits
	iocSSft   = iocTSft + iocTBits
	iocDSft   = iocSSft + iocSBits
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDSft) | (typ << iocTSft) | (nr << iocNRSft) | (size << iocSSft)
}
func eviocgbit(ev, length uintptr) uintptr { return ioc(iocRead, 'E', 0x20+ev, length) }

func isBitSet(bits []byte, bit int) bool { return bits[bit/8]&(1<<uint(bit%8)) != 0 }

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// evdevKeyMap maps Linux evdev KEY_* codes (include/uapi/linux/input-event-codes.h)
// to the canonical Key space. It deliberately covers the keys the spec
// names explicitly plus a standard US keyboard's printable range.
var evdevKeyMap = map[int]Key{
	2: Key1, 3: Key2, 4: Key3, 5: Key4, 6: Key5, 7: Key6, 8: Key7, 9: Key8, 10: Key9, 11: Key0,
	16: KeyQ, 17: KeyW, 18: KeyE, 19: KeyR, 20: KeyT, 21: KeyY, 22: KeyU, 23: KeyI, 24: KeyO, 25: KeyP,
	30: KeyA, 31: KeyS, 32: KeyD, 33: KeyF, 34: KeyG, 35: KeyH, 36: KeyJ, 37: KeyK, 38: KeyL,
	44: KeyZ, 45: KeyX, 46: KeyC, 47: KeyV, 48: KeyB, 49: KeyN, 50: KeyM,
	1: KeyEscape, 14: KeyBackspace, 15: KeyTab, 28: KeyReturn, 57: KeySpace,
	12: KeyMinus, 13: KeyEqual, 26: KeyLeftBracket, 27: KeyRightBracket, 43: KeyBackslash,
	39: KeySemicolon, 40: KeyQuote, 41: KeyGrave, 51: KeyComma, 52: KeyPeriod, 53: KeySlash,
	42: KeyLeftShift, 54: KeyRightShift, 29: KeyLeftControl, 97: KeyRightControl,
	56: KeyLeftAlt, 100: KeyRightAlt, 125: KeyLeftSuper, 126: KeyRightSuper,
	58: KeyCapsLock, 69: KeyNumLock, 70: KeyScrollLock,
	59: KeyF1, 60: KeyF2, 61: KeyF3, 62: KeyF4, 63: KeyF5, 64: KeyF6, 65: KeyF7, 66: KeyF8,
	67: KeyF9, 68: KeyF10, 87: KeyF11, 88: KeyF12,
	183: KeyF13, 184: KeyF14, 185: KeyF15, 186: KeyF16, 187: KeyF17, 188: KeyF18, 189: KeyF19, 190: KeyF20,
	102: KeyHome, 107: KeyEnd, 104: KeyPageUp, 109: KeyPageDown, 110: KeyInsert, 111: KeyDelete,
	99: KeyPrintScreen, 119: KeyPause,
	103: KeyUp, 108: KeyDown, 105: KeyLeft, 106: KeyRight,
	82: KeyKp0, 79: KeyKp1, 80: KeyKp2, 81: KeyKp3, 75: KeyKp4, 76: KeyKp5, 77: KeyKp6,
	71: KeyKp7, 72: KeyKp8, 73: KeyKp9, 83: KeyKpDecimal, 98: KeyKpDivide, 55: KeyKpMultiply,
	74: KeyKpSubtract, 78: KeyKpAdd, 96: KeyKpEnter, 117: KeyKpEqual,
	113: KeyMediaMute, 114: KeyMediaVolumeDown, 115: KeyMediaVolumeUp,
	163: KeyMediaNextTrack, 165: KeyMediaPrevTrack, 164: KeyMediaPlayPause,
}

// unshiftedRune/shiftedRune give the printable character a key produces,
// feeding the text-input queue without needing a full platform IME.
var unshiftedRune = map[Key]rune{
	KeySpace: ' ', KeyMinus: '-', KeyEqual: '=', KeyLeftBracket: '[', KeyRightBracket: ']',
	KeyBackslash: '\\', KeySemicolon: ';', KeyQuote: '\'', KeyGrave: '`',
	KeyComma: ',', KeyPeriod: '.', KeySlash: '/',
	Key0: '0', Key1: '1', Key2: '2', Key3: '3', Key4: '4', Key5: '5', Key6: '6', Key7: '7', Key8: '8', Key9: '9',
}
var shiftedRune = map[Key]rune{
	KeyMinus: '_', KeyEqual: '+', KeyLeftBracket: '{', KeyRightBracket: '}',
	KeyBackslash: '|', KeySemicolon: ':', KeyQuote: '"', KeyGrave: '~',
	KeyComma: '<', KeyPeriod: '>', KeySlash: '?',
	Key0: ')', Key1: '!', Key2: '@', Key3: '#', Key4: '$', Key5: '%', Key6: '^', Key7: '&', Key8: '*', Key9: '(',
}

func runeFor(key Key, shift bool) (rune, bool) {
	if key >= KeyA && key <= KeyZ {
		r := 'a' + rune(key-KeyA)
		if shift {
			r = 'A' + rune(key-KeyA)
		}
		return r, true
	}
	if shift {
		if r, ok := shiftedRune[key]; ok {
			return r, true
		}
	}
	if r, ok := unshiftedRune[key]; ok {
		return r, true
	}
	return 0, false
}

// LinuxBackend polls evdev keyboard nodes in non-blocking mode, per
// spec §4.3's "evdev polls /dev/input/eventN in non-blocking mode,
// reading 24-byte event records".
type LinuxBackend struct {
	log zerolog.Logger
	kb  *Keyboard
	fds []int

	shiftDown bool
}

// NewLinuxBackend scans /dev/input for keyboard-capable evdev nodes
// (EV_KEY set, EV_ABS clear — the latter rules out joysticks) and opens
// each one non-blocking.
func NewLinuxBackend(kb *Keyboard, log zerolog.Logger) *LinuxBackend {
	b := &LinuxBackend{log: log, kb: kb}
	b.scan()
	return b
}

func (b *LinuxBackend) scan() {
	ents, err := os.ReadDir(evdevDir)
	if err != nil {
		b.log.Warn().Err(err).Msg("keyboard: evdev scan failed")
		return
	}
	for _, ent := range ents {
		if ent.IsDir() || !reEvdevNode.MatchString(ent.Name()) {
			continue
		}
		path := filepath.Join(evdevDir, ent.Name())
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			continue
		}
		evBits := make([]byte, 4)
		if err := ioctl(fd, eviocgbit(0, uintptr(len(evBits))), unsafe.Pointer(&evBits[0])); err != nil || !isBitSet(evBits, evKey) {
			unix.Close(fd)
			continue
		}
		absBits := make([]byte, 8)
		_ = ioctl(fd, eviocgbit(3, uintptr(len(absBits))), unsafe.Pointer(&absBits[0]))
		hasAbs := false
		for _, bb := range absBits {
			if bb != 0 {
				hasAbs = true
				break
			}
		}
		if hasAbs {
			unix.Close(fd) // looks like a joystick, not a keyboard
			continue
		}
		b.fds = append(b.fds, fd)
	}
}

// CheckConnection re-scans for keyboard nodes only while none is open;
// once at least one node is open it does nothing, so a keyboard plugged
// in later is not picked up. Meant for the manager's connection-probe
// cadence like the pad backend.
func (b *LinuxBackend) CheckConnection() {
	if len(b.fds) > 0 {
		return
	}
	b.scan()
}

type inputEvent struct {
	typ   uint16
	code  uint16
	value int32
}

const evSize = 24

// Poll drains pending input_event records from every open keyboard node.
func (b *LinuxBackend) Poll(ds *gainput.DeltaState) {
	buf := make([]byte, evSize)
	for _, fd := range b.fds {
		for {
			n, err := unix.Read(fd, buf)
			if err != nil || n < evSize {
				break
			}
			e := inputEvent{
				typ:   uint16(buf[16]) | uint16(buf[17])<<8,
				code:  uint16(buf[18]) | uint16(buf[19])<<8,
				value: int32(buf[20]) | int32(buf[21])<<8 | int32(buf[22])<<16 | int32(buf[23])<<24,
			}
			b.applyEvent(e, ds)
		}
	}
}

func (b *LinuxBackend) applyEvent(e inputEvent, ds *gainput.DeltaState) {
	if int(e.typ) != evKey || e.value == 2 { // ignore autorepeat (value==2)
		return
	}
	key, ok := evdevKeyMap[int(e.code)]
	if !ok {
		return
	}
	down := e.value != 0
	if key == KeyLeftShift || key == KeyRightShift {
		b.shiftDown = down
	}
	b.kb.HandleKey(key, down, ds)
	if down {
		if r, ok := runeFor(key, b.shiftDown); ok {
			b.kb.HandleText(r)
		}
	}
}

// Close releases every open evdev file descriptor.
func (b *LinuxBackend) Close() {
	for _, fd := range b.fds {
		unix.Close(fd)
	}
	b.fds = nil
}
