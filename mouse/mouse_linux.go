// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build linux

package mouse

import (
	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const miceDevice = "/dev/input/mice"

// PS/2 packet layout: byte0 bit0=left, bit1=right, bit2=middle, bit3=1
// (always set), bit4=dx sign, bit5=dy sign, bit6/7=overflow; byte1=dx,
// byte2=dy, both unsigned magnitudes combined with their sign bit.
const (
	packetLeft   = 1 << 0
	packetRight  = 1 << 1
	packetMiddle = 1 << 2
	packetXSign  = 1 << 4
	packetYSign  = 1 << 5
)

// LinuxBackend reads the kernel's merged mouse stream at /dev/input/mice,
// the same mousedev node every PS/2-protocol consumer on Linux reads —
// this sidesteps per-device evdev enumeration at the cost of not
// distinguishing which physical mouse produced an event, a limitation
// the spec's dialect layer does not need for a single logical mouse.
type LinuxBackend struct {
	log   zerolog.Logger
	mouse *Mouse
	fd    int
}

// NewLinuxBackend opens /dev/input/mice. A missing node (no mouse
// present, or insufficient permissions) is logged and Poll becomes a
// no-op, matching the cross-platform contract that a missing back-end
// never aborts manager startup.
func NewLinuxBackend(m *Mouse, log zerolog.Logger) *LinuxBackend {
	b := &LinuxBackend{log: log, mouse: m, fd: -1}
	fd, err := unix.Open(miceDevice, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		b.log.Warn().Err(err).Str("path", miceDevice).Msg("mouse: open failed, raw mouse disabled")
		return b
	}
	b.fd = fd
	return b
}

// Poll drains whole 3-byte PS/2 packets and feeds them to the mouse as
// button and relative-delta updates.
func (b *LinuxBackend) Poll(ds *gainput.DeltaState) {
	if b.fd < 0 {
		return
	}
	buf := make([]byte, 3)
	for {
		n, err := unix.Read(b.fd, buf)
		if err != nil || n < 3 {
			return
		}
		b.applyPacket(buf, ds)
	}
}

func (b *LinuxBackend) applyPacket(p []byte, ds *gainput.DeltaState) {
	flags := p[0]
	b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonLeft), flags&packetLeft != 0, ds)
	b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonRight), flags&packetRight != 0, ds)
	b.mouse.HandleButtonBool(gainput.DeviceButtonID(ButtonMiddle), flags&packetMiddle != 0, ds)

	dx := int16(p[1])
	if flags&packetXSign != 0 {
		dx -= 256
	}
	// The PS/2 wire carries +y as "up"; screen and InputState Y convention
	// is +y "down", so the sign is inverted on the way in.
	dy := int16(p[2])
	if flags&packetYSign != 0 {
		dy -= 256
	}
	b.mouse.HandleRelativeDelta(float32(dx), -float32(dy), ds)
}

// Close releases the device node.
func (b *LinuxBackend) Close() {
	if b.fd >= 0 {
		unix.Close(b.fd)
		b.fd = -1
	}
}
