// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Bus kinds, per the USB HID bus-type constants DirectInput enumeration
// reports them under.
const (
	BusUSB       uint16 = 0x03
	BusBluetooth uint16 = 0x05
)

// GUID is the 16-byte hardware identity a dialect mapping is keyed by:
// {bus, 0, vendor, 0, product, 0, version, 0} for USB devices, or
// {bus=Bluetooth, 0, name bytes...} for Bluetooth ones that expose no
// stable vendor/product pair.
type GUID [16]byte

// NewUSBGUID builds the USB-bus GUID for (vendor, product, version).
func NewUSBGUID(vendor, product, version uint16) GUID {
	var g GUID
	binary.LittleEndian.PutUint16(g[0:2], BusUSB)
	binary.LittleEndian.PutUint16(g[4:6], vendor)
	binary.LittleEndian.PutUint16(g[8:10], product)
	binary.LittleEndian.PutUint16(g[12:14], version)
	return g
}

// NewBluetoothGUID builds the Bluetooth-bus GUID from the device's
// advertised name, used when no stable vendor/product pair is available.
func NewBluetoothGUID(name string) GUID {
	var g GUID
	binary.LittleEndian.PutUint16(g[0:2], BusBluetooth)
	n := copy(g[4:], name)
	_ = n
	return g
}

// pidvidTail is the legacy ASCII marker ("PIDVID", hex chars 20-31 of the
// 32-char GUID string form, i.e. bytes 10-15) the SDL community
// convention uses to flag a GUID that still needs the 2.0.5 fix-up
// applied before it can be looked up in a mapping database built against
// the newer GUID form.
var pidvidTail = mustHex("504944564944")

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// FixLegacyPIDVID rewrites g if its bytes 10-15 carry the legacy
// "PIDVID" marker, reproducing the SDL community's bit-exact fix-up: the
// vendor/product fields (bytes 4-9) are kept, the PIDVID tail is zeroed,
// and the bus field is normalized to BusUSB. Mapping databases built
// against the post-fix-up form would otherwise silently fail to match
// older-generation GUIDs.
func FixLegacyPIDVID(g GUID) GUID {
	if !bytesEqual(g[10:16], pidvidTail) {
		return g
	}
	var fixed GUID
	copy(fixed[:], g[:])
	binary.LittleEndian.PutUint16(fixed[0:2], BusUSB)
	for i := 10; i < 16; i++ {
		fixed[i] = 0
	}
	return fixed
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders g as the lowercase hex form used in mapping database
// text (the "<guidhex>" field of a gamecontrollerdb.txt-style line).
func (g GUID) String() string {
	return strings.ToLower(hex.EncodeToString(g[:]))
}

// ParseGUID parses the hex form back into a GUID; it returns false if s
// is not exactly 32 hex characters.
func ParseGUID(s string) (GUID, bool) {
	var g GUID
	if len(s) != 32 {
		return g, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return g, false
	}
	copy(g[:], b)
	return g, true
}
