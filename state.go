// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

// InputState is the value object every device stages its reading into: a
// bitset over boolean buttons and a dense float array over axes, both
// indexed directly by DeviceButtonID. A device typically keeps two or
// three of these — current (read by API consumers), next (written by
// back-ends and the concurrent queue), and sometimes previous (edge
// detection, e.g. the mouse-wheel auto-release).
type InputState struct {
	bools []bool
	axes  []float32
}

// NewInputState allocates a state sized for a device with the given
// number of boolean buttons and float axes.
func NewInputState(boolCount, axisCount int) *InputState {
	return &InputState{
		bools: make([]bool, boolCount),
		axes:  make([]float32, axisCount),
	}
}

// GetBool returns the boolean at id, or false if id is out of range.
func (s *InputState) GetBool(id DeviceButtonID) bool {
	i := int(id)
	if i < 0 || i >= len(s.bools) {
		return false
	}
	return s.bools[i]
}

// SetBool writes the boolean at id. Out-of-range ids are ignored.
func (s *InputState) SetBool(id DeviceButtonID, v bool) {
	i := int(id)
	if i < 0 || i >= len(s.bools) {
		return
	}
	s.bools[i] = v
}

// GetFloat returns the axis value at id, or 0 if id is out of range.
func (s *InputState) GetFloat(id DeviceButtonID) float32 {
	i := int(id)
	if i < 0 || i >= len(s.axes) {
		return 0
	}
	return s.axes[i]
}

// SetFloat writes the axis value at id. Out-of-range ids are ignored.
func (s *InputState) SetFloat(id DeviceButtonID, v float32) {
	i := int(id)
	if i < 0 || i >= len(s.axes) {
		return
	}
	s.axes[i] = v
}

// CopyFrom overwrites the receiver's contents with src's, reusing
// existing backing arrays when the sizes already match — the common case
// once a device has allocated its state once.
func (s *InputState) CopyFrom(src *InputState) {
	if len(s.bools) != len(src.bools) {
		s.bools = make([]bool, len(src.bools))
	}
	if len(s.axes) != len(src.axes) {
		s.axes = make([]float32, len(src.axes))
	}
	copy(s.bools, src.bools)
	copy(s.axes, src.axes)
}

// Clear zeroes every button and axis. Devices call it on both their
// current and next states from ClearAllStates; the tick itself does not
// clear any state.
func (s *InputState) Clear() {
	for i := range s.bools {
		s.bools[i] = false
	}
	for i := range s.axes {
		s.axes[i] = 0
	}
}

// BoolCount and AxisCount report the state's fixed dimensions.
func (s *InputState) BoolCount() int { return len(s.bools) }
func (s *InputState) AxisCount() int { return len(s.axes) }
