// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build darwin && !ios

package pad

import (
	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
)

// platformVariant and newPlatformBackend are this file's half of the
// nativeLayer()-style factory dispatch pool.go uses: exactly one of
// linux/windows/darwin/null is compiled into any given binary.
//
// macOS's platform-native controller framework (Apple's Game Controller
// framework, per spec.md §4.5's "platform-native controller framework"
// bullet) and its IOHIDManager-based DirectInput-style enumeration are
// both Objective-C frameworks with no cgo-free binding in the retrieved
// corpus; rather than fabricate an unverifiable cgo wrapper, this build
// reuses the unified HID layer (pad_hid.go) as the sole backend on
// Darwin — it already covers the PlayStation family over plain USB,
// which is the one class of controller §4.5 calls out as the unified
// HID layer's explicit responsibility on every desktop platform
// including macOS.
// platformMaxPads caps NewPool's pool size on Apple targets.
const platformMaxPads = 8

func platformVariant() gainput.DeviceVariant { return gainput.VariantPadHID }

func newPlatformBackend(pool []*Pad, db *Database, rumble *RumbleWorker, hidDiscovery bool, log zerolog.Logger) Backend {
	if !hidDiscovery {
		return noopBackend{}
	}
	return NewHIDBackend(pool, db, rumble, log)
}
