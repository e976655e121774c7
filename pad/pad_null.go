// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build !linux && !windows && !darwin

package pad

import (
	"github.com/galvanized/gainput"
	"github.com/rs/zerolog"
)

// nullBackend is the mobile/unknown-platform fallback: Android and iOS
// deliver controller events through their own framework callbacks (the
// Apple Game Controller framework, the Android GameController APIs)
// rather than through any polling loop this package can run, so
// CheckConnection here is a no-op and the platform embedding is expected
// to drive pads directly through Pad.Bind/HandleButtonBool/
// HandleButtonFloat from its own framework bridge, the same way
// touch_android.go and touch_ios.go bridge their platforms without a
// polling backend.
type nullBackend struct{}

func (nullBackend) CheckConnection() {}

const platformMaxPads = 10

func platformVariant() gainput.DeviceVariant { return gainput.VariantPadNative }

func newPlatformBackend(pool []*Pad, db *Database, rumble *RumbleWorker, hidDiscovery bool, log zerolog.Logger) Backend {
	return nullBackend{}
}
