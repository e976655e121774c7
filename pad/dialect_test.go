// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pad

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMappingLineDefaultFields(t *testing.T) {
	d, err := ParseMappingLine("0300000000000000,Test Pad,a:b1,leftx:a0,dpup:h0.1")
	require.NoError(t, err)
	require.Equal(t, "Test Pad", d.Name)
	require.Equal(t, RawBinding{Source: SourceButton, Index: 1}, d.Buttons[ButtonA])
	require.Equal(t, RawBinding{Source: SourceAxis, Index: 0}, d.Buttons[AxisLeftStickX])
	require.Equal(t, 1, d.Hats[ButtonUp])
}

func TestParseMappingLineUnknownFieldIgnored(t *testing.T) {
	d, err := ParseMappingLine("0300000000000000,Test,platform:Linux,a:b1")
	require.NoError(t, err)
	require.Equal(t, RawBinding{Source: SourceButton, Index: 1}, d.Buttons[ButtonA])
}

func TestDefaultDialectMatchesLiteralTable(t *testing.T) {
	d := DefaultDialect()
	require.Equal(t, RawBinding{Source: SourceButton, Index: 1}, d.Buttons[ButtonA])
	require.Equal(t, RawBinding{Source: SourceButton, Index: 9}, d.Buttons[ButtonStart])
	require.Equal(t, RawBinding{Source: SourceAxis, Index: 5}, d.Buttons[AxisRightStickY])
	require.Equal(t, 1, d.Hats[ButtonUp])
	require.Equal(t, 4, d.Hats[ButtonDown])
	require.Equal(t, 8, d.Hats[ButtonLeft])
	require.Equal(t, 2, d.Hats[ButtonRight])
}

func TestDatabaseLookupFallsBackToDefault(t *testing.T) {
	db := NewDatabase()
	g := NewUSBGUID(0x1234, 0x5678, 1)
	d := db.Lookup(g)
	require.Equal(t, "default", d.Name)
}

func TestDatabaseLookupFindsLoadedEntry(t *testing.T) {
	db := NewDatabase()
	g := NewUSBGUID(0x045e, 0x028e, 1)
	text := g.String() + ",Xbox 360,a:b0,b:b1\n"
	require.NoError(t, db.LoadText(strings.NewReader(text)))
	d := db.Lookup(g)
	require.Equal(t, "Xbox 360", d.Name)
}

// TestStickNormalizationRoundTrip checks that NormalizeStick maps a
// signed 16-bit axis's center and both ends to 0, 1 and -1.
func TestStickNormalizationRoundTrip(t *testing.T) {
	x := NormalizeStick(0, -32768, 32767)
	require.InDelta(t, 0, x, 0.01)

	x = NormalizeStick(32767, -32768, 32767)
	require.InDelta(t, 1, x, 0.01)

	x = NormalizeStick(-32768, -32768, 32767)
	require.InDelta(t, -1, x, 0.01)
}

func TestApplyStickDeadzoneZeroIsPassthrough(t *testing.T) {
	x, y := ApplyStickDeadzone(0.5, 0.3, 0)
	require.Equal(t, float32(0.5), x)
	require.Equal(t, float32(0.3), y)
}

// TestApplyStickDeadzoneScenarioS3 is scenario S3 from the end-to-end
// list: dead-zone 0.15, raw (0.1,0.05) normalized collapses to (0,0);
// raw (0.5,0) maps to ((0.5-0.15)/0.85, 0) ~= (0.4118, 0).
func TestApplyStickDeadzoneScenarioS3(t *testing.T) {
	x, y := ApplyStickDeadzone(0.1, 0.05, 0.15)
	require.Equal(t, float32(0), x)
	require.Equal(t, float32(0), y)

	x, y = ApplyStickDeadzone(0.5, 0, 0.15)
	require.InDelta(t, 0.4118, float64(x), 0.001)
	require.InDelta(t, 0, float64(y), 0.001)
}

func TestApplyStickDeadzoneMagnitudeBounded(t *testing.T) {
	for _, raw := range [][2]float32{{1, 1}, {0.2, 0.9}, {-1, 0.3}} {
		x, y := ApplyStickDeadzone(raw[0], raw[1], 0.15)
		mag := math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y))
		require.LessOrEqual(t, mag, math.Sqrt(2)+0.001)
		require.GreaterOrEqual(t, mag, 0.0)
	}
}

// TestDecodeHatSchemesDiffer covers invariant #6: each scheme reads its
// own centered value (8 for scheme A, 0 for scheme B) as no direction,
// and scheme A decodes 1 as Right only and 7 as Left+Up.
func TestDecodeHatSchemesDiffer(t *testing.T) {
	up, right, down, left := DecodeHat(8, true) // scheme A center
	require.False(t, up || right || down || left)

	up, right, down, left = DecodeHat(0, false) // scheme B center
	require.False(t, up || right || down || left)

	up, right, down, left = DecodeHat(1, true) // scheme A: right only
	require.True(t, right)
	require.False(t, up || down || left)

	up, right, down, left = DecodeHat(7, true) // scheme A: left+up
	require.True(t, up && left)
	require.False(t, right || down)
}

func TestDecodeHatMaskDiagonal(t *testing.T) {
	up, right, down, left := DecodeHatMask(1 | 2) // up+right
	require.True(t, up && right)
	require.False(t, down || left)
}
