// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"context"
	"fmt"
	"sync"

	"github.com/galvanized/gainput"
	"github.com/google/gousb"
	"github.com/rs/zerolog"
)

// hidVendorProduct is one entry in the unified HID layer's PlayStation
// -family recognition table: the vendor/product pair gousb opens, plus
// the GUID it synthesizes so the dialect database (and the legacy PIDVID
// fix-up) still apply uniformly to HID-discovered pads.
type hidVendorProduct struct {
	vendor, product gousb.ID
	name            string
}

// knownHIDPads is deliberately small: the unified HID layer exists for
// the PlayStation family, per §4.5 ("Unified HID layer... dispatches
// rumble/LED via HID output reports" and §4.6's display name convention
// for controllers not covered by XInput or a joystick-API enumeration).
var knownHIDPads = []hidVendorProduct{
	{0x054c, 0x09cc, "PS4 Controller"},
	{0x054c, 0x0ce6, "PS5 Controller"},
}

// hidPad is one bound interrupt-IN/OUT endpoint pair plus the Pad slot it
// feeds.
type hidPad struct {
	pad    *Pad
	ctx    *gousb.Context
	dev    *gousb.Device
	cfg    *gousb.Config
	intf   *gousb.Interface
	in     *gousb.InEndpoint
	out    *gousb.OutEndpoint
	cancel context.CancelFunc
	prev   [64]byte
}

// WriteOutputReport implements HIDHandle over the interrupt-OUT endpoint,
// writing the report bytes as given (no padding or truncation).
func (h *hidPad) WriteOutputReport(report []byte) error {
	if h.out == nil {
		return fmt.Errorf("pad: hid device has no output endpoint")
	}
	_, err := h.out.Write(report)
	return err
}

func (h *hidPad) close() {
	if h.cancel != nil {
		h.cancel()
	}
	if h.intf != nil {
		h.intf.Close()
	}
	if h.cfg != nil {
		h.cfg.Close()
	}
	if h.dev != nil {
		h.dev.Close()
	}
	if h.ctx != nil {
		h.ctx.Close()
	}
}

// HIDBackend is the unified HID layer of §4.5: it opens supported
// PlayStation-family controllers directly over USB via gousb rather than
// going through a platform joystick API. NewPool uses it only on Darwin,
// as that platform's sole backend; it tracks only the devices it opened
// itself and does not check whether another backend already bound the
// same controller.
type HIDBackend struct {
	mu     sync.Mutex
	pool   []*Pad
	db     *Database
	rumble *RumbleWorker
	log    zerolog.Logger

	ctx    *gousb.Context
	active map[string]*hidPad // keyed by gousb device string, not GUID: two identical controllers share a GUID
}

// NewHIDBackend constructs a backend bound to pool's slots; CheckConnection
// is driven by the manager's connection-probe cadence exactly like
// pad_linux.go's inotify scan.
func NewHIDBackend(pool []*Pad, db *Database, rumble *RumbleWorker, log zerolog.Logger) *HIDBackend {
	return &HIDBackend{
		pool:   pool,
		db:     db,
		rumble: rumble,
		log:    log,
		active: map[string]*hidPad{},
	}
}

func (b *HIDBackend) context() *gousb.Context {
	if b.ctx == nil {
		b.ctx = gousb.NewContext()
	}
	return b.ctx
}

// CheckConnection opens any newly-visible known VID/PID device and starts
// its report-reading goroutine; devices that disappear are detected by
// their read goroutine returning an error and unbinding their pad.
func (b *HIDBackend) CheckConnection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	ctx := b.context()
	for _, known := range knownHIDPads {
		devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
			return desc.Vendor == known.vendor && desc.Product == known.product
		})
		if err != nil {
			b.log.Warn().Err(err).Msg("pad: hid enumeration failed")
			continue
		}
		for _, dev := range devs {
			key := dev.String()
			if _, already := b.active[key]; already {
				dev.Close()
				continue
			}
			slot := b.freeSlot()
			if slot == nil {
				dev.Close()
				continue
			}
			b.bind(slot, dev, known)
		}
	}
}

func (b *HIDBackend) freeSlot() *Pad {
	for _, p := range b.pool {
		if p.State() == gainput.DeviceStateUnavailable {
			return p
		}
	}
	return nil
}

func (b *HIDBackend) bind(p *Pad, dev *gousb.Device, known hidVendorProduct) {
	cfg, err := dev.Config(1)
	if err != nil {
		b.log.Warn().Err(err).Msg("pad: hid config open failed")
		dev.Close()
		return
	}
	intf, err := cfg.Interface(0, 0)
	if err != nil {
		b.log.Warn().Err(err).Msg("pad: hid interface open failed")
		cfg.Close()
		dev.Close()
		return
	}
	in, err := intf.InEndpoint(1)
	if err != nil {
		b.log.Warn().Err(err).Msg("pad: hid input endpoint open failed")
		intf.Close()
		cfg.Close()
		dev.Close()
		return
	}
	var out *gousb.OutEndpoint
	if o, oerr := intf.OutEndpoint(2); oerr == nil {
		out = o
	}

	guid := FixLegacyPIDVID(NewUSBGUID(uint16(known.vendor), uint16(known.product), 0))
	dialect := b.db.Lookup(guid)
	if dialect.Name == DefaultDialect().Name {
		// No mapping-database entry for this hardware: use the known
		// display name rather than the generic "default" dialect name.
		named := *dialect
		named.Name = known.name
		dialect = &named
	}

	hp := &hidPad{pad: p, ctx: b.ctx, dev: dev, cfg: cfg, intf: intf, in: in, out: out}
	ctx, cancel := context.WithCancel(context.Background())
	hp.cancel = cancel
	p.SetBackend(b, b.rumble)
	p.Bind(dialect, hp)
	b.active[dev.String()] = hp
	go b.readLoop(ctx, hp)
}

// readLoop decodes the PS4/PS5 64-byte input report (byte 0 = report id,
// 1-4 = sticks, 5 = face buttons in the high nibble + dpad hat in the low
// nibble, 6 = shoulder/select/start/stick buttons, 7 = PS button in bit
// 0, 8-9 = analog triggers) into the
// canonical button/axis space, until the device is unplugged.
func (b *HIDBackend) readLoop(ctx context.Context, hp *hidPad) {
	buf := make([]byte, hp.in.Desc.MaxPacketSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := hp.in.Read(buf)
		if err != nil {
			b.log.Debug().Err(err).Msg("pad: hid device disconnected")
			b.unbind(hp)
			return
		}
		if n < 10 {
			continue
		}
		// PS4/PS5 controllers stream reports at a fixed rate whether or
		// not anything changed; identical consecutive reports are
		// dropped so the concurrent queue only carries real transitions.
		if n <= len(hp.prev) && bytesEqual(hp.prev[:n], buf[:n]) {
			continue
		}
		copy(hp.prev[:], buf[:n])
		b.decodeReport(hp, buf[:n])
	}
}

func (b *HIDBackend) unbind(hp *hidPad) {
	b.mu.Lock()
	delete(b.active, hp.dev.String())
	b.mu.Unlock()
	hp.close()
	hp.pad.Unbind()
}

// decodeReport translates one input report into enqueued changes. It
// runs on the device's read goroutine, so every write crosses into the
// tick through the manager's concurrent queue (Pad.Enqueue*); a pad not
// wired to a manager applies the writes directly, which keeps the
// decoder testable without a running tick.
func (b *HIDBackend) decodeReport(hp *hidPad, report []byte) {
	p := hp.pad
	altDpad := false
	if d := p.dialect; d != nil {
		altDpad = d.AlternativeDpadScheme
	}

	lx := NormalizeStick(float64(report[1]), 0, 255)
	ly := -NormalizeStick(float64(report[2]), 0, 255) // OS down-positive -> engine up-positive
	rx := NormalizeStick(float64(report[3]), 0, 255)
	ry := -NormalizeStick(float64(report[4]), 0, 255)
	p.EnqueueStickPair(gainput.DeviceButtonID(AxisLeftStickX), gainput.DeviceButtonID(AxisLeftStickY), lx, ly)
	p.EnqueueStickPair(gainput.DeviceButtonID(AxisRightStickX), gainput.DeviceButtonID(AxisRightStickY), rx, ry)

	p.EnqueueButtonFloat(gainput.DeviceButtonID(Axis4), NormalizeTrigger(float64(report[8]), 0, 255))
	p.EnqueueButtonFloat(gainput.DeviceButtonID(Axis5), NormalizeTrigger(float64(report[9]), 0, 255))

	hat := int(report[5] & 0x0f)
	up, right, down, left := DecodeHat(hat, altDpad)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonUp), up)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonDown), down)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonLeft), left)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonRight), right)

	face := report[5]
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonY), face&0x80 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonB), face&0x40 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonA), face&0x20 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonX), face&0x10 != 0)

	shoulder := report[6]
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonL1), shoulder&0x01 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonR1), shoulder&0x02 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonL2), shoulder&0x04 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonR2), shoulder&0x08 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonSelect), shoulder&0x10 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonStart), shoulder&0x20 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonL3), shoulder&0x40 != 0)
	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonR3), shoulder&0x80 != 0)

	p.EnqueueButtonBool(gainput.DeviceButtonID(ButtonHome), report[7]&0x01 != 0)
}

// Close releases every open USB handle and the gousb context; the
// manager's Exit path should call this once it has stopped the rumble
// worker.
func (b *HIDBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, hp := range b.active {
		hp.close()
	}
	b.active = map[string]*hidPad{}
	if b.ctx != nil {
		b.ctx.Close()
		b.ctx = nil
	}
}
