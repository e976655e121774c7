// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build windows

package pad

import (
	"sync"
	"unsafe"

	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"
)

// xinputMaxControllers is the fixed XInput slot count the Windows API
// has carried unchanged since Windows XP.
const xinputMaxControllers = 4

// XINPUT_GAMEPAD.wButtons bit layout.
const (
	xiDpadUp        = 0x0001
	xiDpadDown      = 0x0002
	xiDpadLeft      = 0x0004
	xiDpadRight     = 0x0008
	xiStart         = 0x0010
	xiBack          = 0x0020
	xiLeftThumb     = 0x0040
	xiRightThumb    = 0x0080
	xiLeftShoulder  = 0x0100
	xiRightShoulder = 0x0200
	xiA             = 0x1000
	xiB             = 0x2000
	xiX             = 0x4000
	xiY             = 0x8000
)

var xiButtonBits = map[uint16]Button{
	xiDpadUp: ButtonUp, xiDpadDown: ButtonDown, xiDpadLeft: ButtonLeft, xiDpadRight: ButtonRight,
	xiStart: ButtonStart, xiBack: ButtonSelect,
	xiLeftThumb: ButtonL3, xiRightThumb: ButtonR3,
	xiLeftShoulder: ButtonL1, xiRightShoulder: ButtonR1,
	xiA: ButtonA, xiB: ButtonB, xiX: ButtonX, xiY: ButtonY,
}

// xinputGamepad mirrors the Win32 XINPUT_GAMEPAD struct layout exactly
// (field order and widths matter: this is read directly out of the DLL's
// output buffer).
type xinputGamepad struct {
	wButtons      uint16
	bLeftTrigger  byte
	bRightTrigger byte
	sThumbLX      int16
	sThumbLY      int16
	sThumbRX      int16
	sThumbRY      int16
}

// xinputState mirrors XINPUT_STATE: a sequence counter XInputGetState
// bumps on every real change, letting Poll skip re-translating
// a controller that has not moved since the last poll.
type xinputState struct {
	dwPacketNumber uint32
	gamepad        xinputGamepad
}

// xinputTriggerThreshold matches XINPUT_GAMEPAD_TRIGGER_THRESHOLD; the
// stick deadzones are not needed here since HandleStickPair already
// applies the dialect's (or the pool's fallback) deadzone.
const xinputTriggerThreshold = 30.0 / 255.0

var (
	xinputDLL          = windows.NewLazySystemDLL("xinput1_4.dll")
	procXInputGetState = xinputDLL.NewProc("XInputGetState")
	procXInputSetState = xinputDLL.NewProc("XInputSetState")
)

// xinputSlot tracks one of the four fixed XInput indices.
type xinputSlot struct {
	pad        *Pad
	lastPacket uint32
	connected  bool
}

// WindowsBackend polls XInput slots 0-3 directly (fixed hardware report
// layout, no dialect needed). Controllers XInput does not recognize are
// not handled: NewPool does not add pad_hid.go alongside this backend on
// Windows. Pool slots beyond 4 are never bound.
type WindowsBackend struct {
	log zerolog.Logger
	mu  sync.Mutex

	slots [xinputMaxControllers]xinputSlot
}

// NewWindowsBackend binds up to the first 4 pool slots to XInput indices
// 0-3 in order; CheckConnection performs the actual per-slot connect
// probe.
func NewWindowsBackend(pool []*Pad, log zerolog.Logger) *WindowsBackend {
	b := &WindowsBackend{log: log}
	for i := 0; i < xinputMaxControllers && i < len(pool); i++ {
		b.slots[i].pad = pool[i]
	}
	b.CheckConnection()
	return b
}

func xInputGetState(index uint32, state *xinputState) error {
	r, _, _ := procXInputGetState.Call(uintptr(index), uintptr(unsafe.Pointer(state)))
	if r != 0 {
		return windows.Errno(r)
	}
	return nil
}

// CheckConnection polls every XInput index for connect/disconnect
// transitions, binding the default dialect-less mapping on connect
// (XInput's report layout is fixed by Microsoft, so there is no dialect
// database lookup the way DirectInput/HID devices need) and unbinding on
// disconnect.
func (b *WindowsBackend) CheckConnection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.slots {
		slot := &b.slots[i]
		if slot.pad == nil {
			continue
		}
		var st xinputState
		err := xInputGetState(uint32(i), &st)
		connected := err == nil
		if connected == slot.connected {
			continue
		}
		slot.connected = connected
		if connected {
			slot.pad.Bind(xinputDialect(), xinputHandle{index: uint32(i)})
		} else {
			slot.pad.Unbind()
		}
	}
}

// xinputDialect is DefaultDialect renamed "xinput". There is no vendor
// mapping to resolve: translate reads XINPUT_GAMEPAD's fields directly
// and does not consult the dialect's Buttons/Hats tables; only its
// StickDeadzone is used, by HandleStickPair.
func xinputDialect() *Dialect {
	d := DefaultDialect()
	d.Name = "xinput"
	return d
}

// Poll reads every connected slot's current packet and, if it changed
// since the last poll, translates it into button/axis updates.
func (b *WindowsBackend) Poll(ds *gainput.DeltaState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.slots {
		slot := &b.slots[i]
		if slot.pad == nil || !slot.connected {
			continue
		}
		var st xinputState
		if err := xInputGetState(uint32(i), &st); err != nil {
			continue
		}
		if st.dwPacketNumber == slot.lastPacket {
			continue
		}
		slot.lastPacket = st.dwPacketNumber
		b.translate(slot.pad, &st.gamepad, ds)
	}
}

func (b *WindowsBackend) translate(p *Pad, g *xinputGamepad, ds *gainput.DeltaState) {
	for bit, btn := range xiButtonBits {
		p.HandleButtonBool(gainput.DeviceButtonID(btn), g.wButtons&bit != 0, ds)
	}
	p.HandleButtonFloat(gainput.DeviceButtonID(Axis4), applyDeadzone1D(float32(g.bLeftTrigger)/255, xinputTriggerThreshold), ds)
	p.HandleButtonFloat(gainput.DeviceButtonID(Axis5), applyDeadzone1D(float32(g.bRightTrigger)/255, xinputTriggerThreshold), ds)
	p.HandleStickPair(gainput.DeviceButtonID(AxisLeftStickX), gainput.DeviceButtonID(AxisLeftStickY),
		float32(g.sThumbLX)/32767, float32(g.sThumbLY)/32767, ds)
	p.HandleStickPair(gainput.DeviceButtonID(AxisRightStickX), gainput.DeviceButtonID(AxisRightStickY),
		float32(g.sThumbRX)/32767, float32(g.sThumbRY)/32767, ds)
}

func applyDeadzone1D(v, dz float32) float32 {
	if v < dz {
		return 0
	}
	return (v - dz) / (1 - dz)
}

type xinputVibration struct {
	wLeftMotorSpeed  uint16
	wRightMotorSpeed uint16
}

// xinputHandle adapts XInputSetState onto the HIDHandle surface the
// rumble worker writes to, so XInput pads share the timed-effect path:
// the worker's 9-byte report carries the motor bytes at indexes 4 and 5,
// which are scaled back up to XInput's 16-bit motor speeds.
type xinputHandle struct {
	index uint32
}

func (h xinputHandle) WriteOutputReport(report []byte) error {
	if len(report) < 6 {
		return nil
	}
	vib := xinputVibration{
		wLeftMotorSpeed:  uint16(report[4]) * 257,
		wRightMotorSpeed: uint16(report[5]) * 257,
	}
	r, _, _ := procXInputSetState.Call(uintptr(h.index), uintptr(unsafe.Pointer(&vib)))
	if r != 0 {
		return windows.Errno(r)
	}
	return nil
}

// Vibrate issues an XInput rumble command directly (XInput has its own
// SetState call distinct from the HID output-report path pad_hid.go and
// the rumble worker use for everything else).
func (b *WindowsBackend) Vibrate(index int, leftMotor, rightMotor float32) {
	if index < 0 || index >= xinputMaxControllers {
		return
	}
	vib := xinputVibration{
		wLeftMotorSpeed:  uint16(clampUnit(leftMotor) * 65535),
		wRightMotorSpeed: uint16(clampUnit(rightMotor) * 65535),
	}
	procXInputSetState.Call(uintptr(index), uintptr(unsafe.Pointer(&vib)))
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// platformMaxPads caps NewPool's pool size; XInput itself only serves 4
// slots, so the rest stay unbound on Windows.
const platformMaxPads = 10

func platformVariant() gainput.DeviceVariant { return gainput.VariantPadXInput }

func newPlatformBackend(pool []*Pad, db *Database, rumble *RumbleWorker, hidDiscovery bool, log zerolog.Logger) Backend {
	return NewWindowsBackend(pool, log)
}
