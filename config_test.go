// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.Equal(t, 10, c.MaxPadCount)
	require.Equal(t, 200, c.CheckConnectionPeriodMS)
	require.Equal(t, float32(0.15), c.DefaultStickDeadzone)
	require.True(t, c.HIDDiscoveryEnabled)
}

func TestNewConfigOverrides(t *testing.T) {
	c := NewConfig(MaxPadCount(4), DefaultStickDeadzone(0), HIDDiscoveryEnabled(false))
	require.Equal(t, 4, c.MaxPadCount)
	require.Equal(t, float32(0), c.DefaultStickDeadzone)
	require.False(t, c.HIDDiscoveryEnabled)
}

func TestLoadConfigYAMLOverridesDefaults(t *testing.T) {
	doc := `
max_pad_count: 3
check_connection_period_ms: 50
default_stick_deadzone: 0.2
hid_discovery_enabled: false
text_input_queue_length: 8
`
	c, err := LoadConfigYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 3, c.MaxPadCount)
	require.Equal(t, 50, c.CheckConnectionPeriodMS)
	require.Equal(t, float32(0.2), c.DefaultStickDeadzone)
	require.False(t, c.HIDDiscoveryEnabled)
	require.Equal(t, 8, c.TextInputQueueLength)
}

func TestLoadConfigYAMLAttrsOverrideAfterYAML(t *testing.T) {
	c, err := LoadConfigYAML(strings.NewReader("max_pad_count: 3\n"), MaxPadCount(7))
	require.NoError(t, err)
	require.Equal(t, 7, c.MaxPadCount)
}
