// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying manager lifecycle violations. Nothing in
// the update path ever returns an error, per the propagation policy:
// recoverable failures are absorbed locally and surface only as a state
// transition or a log line. Lifecycle misuse is a programmer error and
// panics with one of these wrapped sentinels, so a test harness that
// recovers can still match with errors.Is.
var (
	// ErrAlreadyInitialized identifies Init called a second time without
	// an intervening Exit.
	ErrAlreadyInitialized = errors.New("gainput: manager already initialized")

	// ErrNotInitialized identifies use of the manager before Init or
	// after Exit.
	ErrNotInitialized = errors.New("gainput: manager not initialized")
)

// initializationViolation panics to signal a programmer error — calling
// the manager before Init or after Exit. This mirrors the source
// library's assertion-style failure for the same condition: it is not a
// runtime condition a caller can recover from, so it is not modeled as an
// error return.
func initializationViolation(sentinel error, msg string) {
	panic(fmt.Errorf("%w: %s", sentinel, msg))
}
