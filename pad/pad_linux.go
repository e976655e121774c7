// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package pad

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"unsafe"

	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const evdevDir = "/dev/input"

var reEvdevNode = regexp.MustCompile(`^event[0-9]+$`)

// evdev ioctl request numbers and event-type/code constants this backend
// needs. golang.org/x/sys/unix does not expose the EVIOCG* macros (they
// are derived with the kernel's _IOC encoding, not fixed syscall numbers),
// so they are reproduced here the way every Go evdev client does.
const (
	evKey = 0x01
	evAbs = 0x03
	evSyn = 0x00

	synDropped = 3

	absHat0X = 0x10
	absHat0Y = 0x11

	btnMisc = 0x100

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
func eviocgid() uintptr                    { return ioc(iocRead, 'E', 0x02, unsafe.Sizeof(inputID{})) }
func eviocgabs(abs uintptr) uintptr {
	return ioc(iocRead, 'E', 0x40+abs, unsafe.Sizeof(inputAbsinfo{}))
}
func eviocgname(length uintptr) uintptr { return ioc(iocRead, 'E', 0x06, length) }

type inputID struct {
	busType uint16
	vendor  uint16
	product uint16
	version uint16
}

type inputAbsinfo struct {
	value      int32
	minimum    int32
	maximum    int32
	fuzz       int32
	flat       int32
	resolution int32
}

type inputEvent struct {
	typ   uint16
	code  uint16
	value int32
}

func isBitSet(bits []byte, bit int) bool { return bits[bit/8]&(1<<uint(bit%8)) != 0 }

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// LinuxBackend owns the inotify watch on /dev/input and a fixed pool of
// Pad slots; it binds the first free slot to each evdev node that looks
// like a gamepad (reports both EV_KEY and EV_ABS), looks up its dialect
// from db by GUID, and polls every bound node once per Poll call.
type LinuxBackend struct {
	log zerolog.Logger
	db  *Database

	mu      sync.Mutex
	pool    []*Pad
	byPath  map[string]*evdevPad
	inotify int
	watch   int
}

type evdevPad struct {
	pad     *Pad
	fd      int
	path    string
	keyMap   map[int]Button
	absMap   map[int]Button
	absRange map[int][2]float64 // raw axis code -> (min,max) from EVIOCGABS
	dialect  *Dialect

	// hat0 tracking: ABS_HAT0X/ABS_HAT0Y report sign only, not a bitmask,
	// so the two axes are tracked separately and the four dpad buttons
	// are derived from their combined sign each time either changes.
	hatButtons map[int]Button // DirectInput-style bit (1/2/4/8) -> canonical button
	hatDX      int
	hatDY      int

	// stick axes arrive as independent evdev events but must reach
	// HandleStickPair together so the dead-zone applies to the pair, not
	// each axis separately.
	leftX, leftY   float32
	rightX, rightY float32
}

// NewLinuxBackend opens the inotify watch and performs the initial
// directory scan. A failed inotify setup is logged and leaves the backend
// without hot-plug; a failed directory read is treated silently as "no
// gamepads available". Neither aborts manager startup.
func NewLinuxBackend(pool []*Pad, db *Database, log zerolog.Logger) *LinuxBackend {
	b := &LinuxBackend{log: log, db: db, pool: pool, byPath: map[string]*evdevPad{}}
	if err := b.initWatch(); err != nil {
		b.log.Warn().Err(err).Msg("pad: evdev watch init failed, falling back to no hot-plug")
	}
	b.scan()
	return b
}

func (b *LinuxBackend) initWatch() error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return err
	}
	b.inotify = fd
	watch, err := unix.InotifyAddWatch(fd, evdevDir, unix.IN_CREATE|unix.IN_ATTRIB|unix.IN_DELETE)
	if err != nil {
		unix.Close(fd)
		b.inotify = 0
		return err
	}
	b.watch = watch
	return nil
}

func (b *LinuxBackend) scan() {
	ents, err := os.ReadDir(evdevDir)
	if err != nil {
		return
	}
	for _, ent := range ents {
		if ent.IsDir() || !reEvdevNode.MatchString(ent.Name()) {
			continue
		}
		b.tryOpen(filepath.Join(evdevDir, ent.Name()))
	}
}

// CheckConnection drains pending inotify events (hot-plug) and is the
// Backend interface's hook, called on the manager's connection-probe
// cadence.
func (b *LinuxBackend) CheckConnection() {
	b.mu.Lock()
	inotify := b.inotify
	b.mu.Unlock()
	if inotify <= 0 {
		return
	}
	buf := make([]byte, 16384)
	n, err := unix.Read(inotify, buf)
	if err != nil || n <= 0 {
		return
	}
	buf = buf[:n]
	for len(buf) >= 16 {
		nameLen := int(le32(buf[12:16]))
		mask := le32(buf[4:8])
		name := ""
		if nameLen > 0 && 16+nameLen <= len(buf) {
			end := 16
			for end < 16+nameLen && buf[end] != 0 {
				end++
			}
			name = string(buf[16:end])
		}
		buf = buf[16+nameLen:]
		if !reEvdevNode.MatchString(name) {
			continue
		}
		path := filepath.Join(evdevDir, name)
		switch {
		case mask&(unix.IN_CREATE|unix.IN_ATTRIB) != 0:
			b.tryOpen(path)
		case mask&unix.IN_DELETE != 0:
			b.closeByPath(path)
		}
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (b *LinuxBackend) tryOpen(path string) {
	b.mu.Lock()
	if _, exists := b.byPath[path]; exists {
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	evBits := make([]byte, 4)
	if err := ioctl(fd, eviocgbit(0, uintptr(len(evBits))), unsafe.Pointer(&evBits[0])); err != nil {
		unix.Close(fd)
		return
	}
	if !isBitSet(evBits, evKey) || !isBitSet(evBits, evAbs) {
		unix.Close(fd)
		return
	}

	var id inputID
	_ = ioctl(fd, eviocgid(), unsafe.Pointer(&id))

	nameBuf := make([]byte, 128)
	_ = ioctl(fd, eviocgname(uintptr(len(nameBuf))), unsafe.Pointer(&nameBuf[0]))

	g := NewUSBGUID(id.vendor, id.product, id.version)
	if id.busType == 0x05 {
		g[0] = BusBluetooth
	}
	dialect := b.db.Lookup(g)

	slot := b.claimSlot()
	if slot == nil {
		b.log.Warn().Str("path", path).Msg("pad: no free pad slots for evdev device")
		unix.Close(fd)
		return
	}

	ep := &evdevPad{pad: slot, fd: fd, path: path, dialect: dialect, keyMap: map[int]Button{}, absMap: map[int]Button{}, absRange: map[int][2]float64{}, hatButtons: map[int]Button{}}
	for btn, binding := range dialect.Buttons {
		switch binding.Source {
		case SourceButton:
			ep.keyMap[btnMisc+binding.Index] = btn
		case SourceAxis:
			ep.absMap[binding.Index] = btn
		}
	}
	for btn, mask := range dialect.Hats {
		ep.hatButtons[mask] = btn
	}
	b.pollInitialAbsState(ep)

	b.mu.Lock()
	b.byPath[path] = ep
	b.mu.Unlock()

	slot.Bind(dialect, nil)
	b.log.Info().Str("path", path).Str("dialect", dialect.Name).Msg("pad: bound evdev device")
}

// pollInitialAbsState reads the kernel's reported range and current value
// of every axis the dialect cares about right after bind, so sticks and
// triggers don't read as zero until the user first moves them and raw
// values normalize against the device's real range rather than the
// dialect's nominal one.
func (b *LinuxBackend) pollInitialAbsState(ep *evdevPad) {
	for code := range ep.absMap {
		var info inputAbsinfo
		if err := ioctl(ep.fd, eviocgabs(uintptr(code)), unsafe.Pointer(&info)); err != nil {
			continue
		}
		if info.minimum != info.maximum {
			ep.absRange[code] = [2]float64{float64(info.minimum), float64(info.maximum)}
		}
		b.applyAxis(ep, code, ep.absMap[code], float64(info.value), nil)
	}
}

// stickRange returns the normalization range for a stick axis: the
// kernel's EVIOCGABS range when known, the dialect's nominal range
// otherwise.
func (ep *evdevPad) stickRange(code int) (float64, float64) {
	if r, ok := ep.absRange[code]; ok {
		return r[0], r[1]
	}
	return ep.dialect.MinAxis, ep.dialect.MaxAxis
}

func (ep *evdevPad) triggerRange(code int) (float64, float64) {
	if r, ok := ep.absRange[code]; ok {
		return r[0], r[1]
	}
	return ep.dialect.MinTrigger, ep.dialect.MaxTrigger
}

// applyAxis routes a raw axis reading to the right handler: trigger axes
// go straight through HandleButtonFloat with the asymmetric formula;
// stick axes update one half of a tracked pair and redispatch through
// HandleStickPair so the dead-zone sees both axes together. Stick Y is
// negated — evdev is down-positive, the canonical space up-positive.
func (b *LinuxBackend) applyAxis(ep *evdevPad, code int, btn Button, raw float64, ds *gainput.DeltaState) {
	switch btn {
	case Axis4, Axis5:
		min, max := ep.triggerRange(code)
		ep.pad.HandleButtonFloat(gainput.DeviceButtonID(btn), NormalizeTrigger(raw, min, max), ds)
	case AxisLeftStickX:
		min, max := ep.stickRange(code)
		ep.leftX = NormalizeStick(raw, min, max)
		ep.pad.HandleStickPair(gainput.DeviceButtonID(AxisLeftStickX), gainput.DeviceButtonID(AxisLeftStickY), ep.leftX, ep.leftY, ds)
	case AxisLeftStickY:
		min, max := ep.stickRange(code)
		ep.leftY = -NormalizeStick(raw, min, max)
		ep.pad.HandleStickPair(gainput.DeviceButtonID(AxisLeftStickX), gainput.DeviceButtonID(AxisLeftStickY), ep.leftX, ep.leftY, ds)
	case AxisRightStickX:
		min, max := ep.stickRange(code)
		ep.rightX = NormalizeStick(raw, min, max)
		ep.pad.HandleStickPair(gainput.DeviceButtonID(AxisRightStickX), gainput.DeviceButtonID(AxisRightStickY), ep.rightX, ep.rightY, ds)
	case AxisRightStickY:
		min, max := ep.stickRange(code)
		ep.rightY = -NormalizeStick(raw, min, max)
		ep.pad.HandleStickPair(gainput.DeviceButtonID(AxisRightStickX), gainput.DeviceButtonID(AxisRightStickY), ep.rightX, ep.rightY, ds)
	default:
		min, max := ep.stickRange(code)
		ep.pad.HandleButtonFloat(gainput.DeviceButtonID(btn), NormalizeStick(raw, min, max), ds)
	}
}

func (b *LinuxBackend) claimSlot() *Pad {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pool {
		if p.State() == gainput.DeviceStateUnavailable {
			return p
		}
	}
	return nil
}

func (b *LinuxBackend) closeByPath(path string) {
	b.mu.Lock()
	ep, ok := b.byPath[path]
	if ok {
		delete(b.byPath, path)
	}
	b.mu.Unlock()
	if !ok {
		return
	}
	unix.Close(ep.fd)
	ep.pad.Unbind()
}

// Poll drains pending input_event records from every bound node and
// applies them directly to each node's Pad via HandleButtonBool/
// HandleButtonFloat. Meant to be called once per manager tick, before
// non-late device updates, with the manager's current DeltaState (which
// may be nil when no listener is registered — the handlers tolerate that).
func (b *LinuxBackend) Poll(ds *gainput.DeltaState) {
	b.mu.Lock()
	eps := make([]*evdevPad, 0, len(b.byPath))
	for _, ep := range b.byPath {
		eps = append(eps, ep)
	}
	b.mu.Unlock()

	const evSize = 24 // struct input_event on 64-bit Linux: 16-byte timeval + type/code/value
	buf := make([]byte, evSize)
	for _, ep := range eps {
		for {
			n, err := unix.Read(ep.fd, buf)
			if err != nil {
				if err != unix.EAGAIN && err != unix.EINTR {
					// EBADF/ENODEV/EIO and friends: the node is gone.
					// The pad drops back to Unavailable; a bind is
					// re-attempted when inotify next reports the node
					// created or changed.
					b.closeByPath(ep.path)
				}
				break
			}
			if n < evSize {
				break
			}
			e := inputEvent{
				typ:   uint16(buf[16]) | uint16(buf[17])<<8,
				code:  uint16(buf[18]) | uint16(buf[19])<<8,
				value: int32(buf[20]) | int32(buf[21])<<8 | int32(buf[22])<<16 | int32(buf[23])<<24,
			}
			b.applyEvent(ep, e, ds)
		}
	}
}

func sign(v int32) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// applyHat0 recomputes the four dpad buttons from the combined sign of
// ABS_HAT0X/ABS_HAT0Y and dispatches any bound canonical button.
func (b *LinuxBackend) applyHat0(ep *evdevPad, ds *gainput.DeltaState) {
	up, right, down, left := DecodeHatMask(hatMaskFromSign(ep.hatDX, ep.hatDY))
	for mask, pressed := range map[int]bool{1: up, 2: right, 4: down, 8: left} {
		if btn, ok := ep.hatButtons[mask]; ok {
			ep.pad.HandleButtonBool(gainput.DeviceButtonID(btn), pressed, ds)
		}
	}
}

func hatMaskFromSign(dx, dy int) int {
	mask := 0
	if dy < 0 {
		mask |= 1
	}
	if dx > 0 {
		mask |= 2
	}
	if dy > 0 {
		mask |= 4
	}
	if dx < 0 {
		mask |= 8
	}
	return mask
}

func (b *LinuxBackend) applyEvent(ep *evdevPad, e inputEvent, ds *gainput.DeltaState) {
	switch int(e.typ) {
	case evKey:
		if btn, ok := ep.keyMap[int(e.code)]; ok {
			ep.pad.HandleButtonBool(gainput.DeviceButtonID(btn), e.value != 0, ds)
		}
	case evAbs:
		code := int(e.code)
		switch code {
		case absHat0X:
			ep.hatDX = sign(e.value)
			b.applyHat0(ep, ds)
		case absHat0Y:
			ep.hatDY = sign(e.value)
			b.applyHat0(ep, ds)
		default:
			if btn, ok := ep.absMap[code]; ok {
				b.applyAxis(ep, code, btn, float64(e.value), ds)
			}
		}
	case evSyn:
		if int(e.code) == synDropped {
			b.log.Debug().Str("path", ep.path).Msg("pad: evdev SYN_DROPPED, resyncing on next report")
		}
	}
}

// platformVariant and newPlatformBackend are this file's half of the
// nativeLayer()-style factory dispatch pool.go uses: exactly one of
// these pairs (linux/windows/darwin/null) is compiled into any given
// binary.
// platformMaxPads caps NewPool's pool size on POSIX back-ends.
const platformMaxPads = 10

func platformVariant() gainput.DeviceVariant { return gainput.VariantPadNative }

func newPlatformBackend(pool []*Pad, db *Database, rumble *RumbleWorker, hidDiscovery bool, log zerolog.Logger) Backend {
	return NewLinuxBackend(pool, db, log)
}

// Close releases the inotify watch and every open evdev file descriptor.
func (b *LinuxBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ep := range b.byPath {
		unix.Close(ep.fd)
	}
	b.byPath = map[string]*evdevPad{}
	if b.inotify > 0 {
		unix.Close(b.inotify)
		b.inotify = 0
	}
}
