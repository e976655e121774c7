// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config carries the options the pad layer and the manager read at
// Init. The functional-options pattern and the YAML loading path mirror
// the teacher engine's own Config type.
type Config struct {
	MaxPadCount             int
	CheckConnectionPeriodMS int
	DefaultStickDeadzone    float32
	HIDDiscoveryEnabled     bool
	TextInputQueueLength    int
	Logger                  zerolog.Logger
}

// yamlConfig mirrors Config's fields for (de)serialization; Config itself
// carries a zerolog.Logger, which has no sensible YAML shape. Fields are
// pointers so an absent key leaves the default alone while an explicit
// zero (deadzone 0, discovery off) still takes effect.
type yamlConfig struct {
	MaxPadCount             *int     `yaml:"max_pad_count"`
	CheckConnectionPeriodMS *int     `yaml:"check_connection_period_ms"`
	DefaultStickDeadzone    *float32 `yaml:"default_stick_deadzone"`
	HIDDiscoveryEnabled     *bool    `yaml:"hid_discovery_enabled"`
	TextInputQueueLength    *int     `yaml:"text_input_queue_length"`
}

// Attr is a Config option, applied in order over the defaults.
type Attr func(*Config)

// MaxPadCount bounds the pre-allocated pad pool and the rumble queue.
func MaxPadCount(n int) Attr { return func(c *Config) { c.MaxPadCount = n } }

// CheckConnectionPeriodMS sets the hot-plug probe cadence.
func CheckConnectionPeriodMS(ms int) Attr {
	return func(c *Config) { c.CheckConnectionPeriodMS = ms }
}

// DefaultStickDeadzone sets the initial per-stick radial dead-zone.
func DefaultStickDeadzone(dz float32) Attr {
	return func(c *Config) { c.DefaultStickDeadzone = dz }
}

// HIDDiscoveryEnabled toggles the unified HID discovery loop.
func HIDDiscoveryEnabled(enabled bool) Attr {
	return func(c *Config) { c.HIDDiscoveryEnabled = enabled }
}

// TextInputQueueLength bounds the keyboard text-input buffer.
func TextInputQueueLength(n int) Attr {
	return func(c *Config) { c.TextInputQueueLength = n }
}

// WithLogger injects a logger; the default discards everything, keeping
// logging an explicitly injected capability rather than an ambient
// global.
func WithLogger(l zerolog.Logger) Attr { return func(c *Config) { c.Logger = l } }

// configDefaults matches the values the spec calls out: a 10-pad pool, a
// 200ms probe period, a 0.15 dead-zone, HID discovery on, and a modest
// text queue.
func configDefaults() Config {
	return Config{
		MaxPadCount:             10,
		CheckConnectionPeriodMS: 200,
		DefaultStickDeadzone:    0.15,
		HIDDiscoveryEnabled:     true,
		TextInputQueueLength:    16,
		Logger:                  zerolog.Nop(),
	}
}

// NewConfig builds a Config from the defaults plus attrs, applied in
// order.
func NewConfig(attrs ...Attr) Config {
	c := configDefaults()
	for _, a := range attrs {
		a(&c)
	}
	return c
}

// LoadConfigYAML reads a YAML document shaped like:
//
//	max_pad_count: 10
//	check_connection_period_ms: 200
//	default_stick_deadzone: 0.15
//	hid_discovery_enabled: true
//	text_input_queue_length: 16
//
// and applies it over the defaults; attrs, if any, are applied after the
// YAML so callers can still override individual fields in code.
func LoadConfigYAML(r io.Reader, attrs ...Attr) (Config, error) {
	var y yamlConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&y); err != nil && err != io.EOF {
		return Config{}, err
	}
	c := configDefaults()
	if y.MaxPadCount != nil {
		c.MaxPadCount = *y.MaxPadCount
	}
	if y.CheckConnectionPeriodMS != nil {
		c.CheckConnectionPeriodMS = *y.CheckConnectionPeriodMS
	}
	if y.DefaultStickDeadzone != nil {
		c.DefaultStickDeadzone = *y.DefaultStickDeadzone
	}
	if y.HIDDiscoveryEnabled != nil {
		c.HIDDiscoveryEnabled = *y.HIDDiscoveryEnabled
	}
	if y.TextInputQueueLength != nil {
		c.TextInputQueueLength = *y.TextInputQueueLength
	}
	for _, a := range attrs {
		a(&c)
	}
	return c, nil
}
