// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package touch

import (
	"sync"

	"github.com/galvanized/gainput"
)

// Touch is a multi-point touch-surface device. It is always synced:
// Android and iOS both deliver touch callbacks on a UI thread distinct
// from the input thread, so every update is routed through the
// concurrent queue and the platform entry points never dispatch to it.
type Touch struct {
	mu sync.Mutex

	index int
	id    gainput.DeviceID

	current *gainput.InputState
	next    *gainput.InputState
}

// NewTouch allocates a touch device. Both state arrays span the full
// packed id range: Down bools sit at stride-4 offsets interleaved with
// the float axes, so the bool array cannot be sized by the point count
// alone.
func NewTouch(index int) *Touch {
	return &Touch{
		index:   index,
		current: gainput.NewInputState(AxisAllocCount, AxisAllocCount),
		next:    gainput.NewInputState(AxisAllocCount, AxisAllocCount),
	}
}

func (t *Touch) SetID(id gainput.DeviceID) { t.id = id }

func (t *Touch) DeviceID() gainput.DeviceID     { return t.id }
func (t *Touch) DeviceType() gainput.DeviceType { return gainput.DeviceTypeTouch }
func (t *Touch) Variant() gainput.DeviceVariant { return gainput.VariantStandard }
func (t *Touch) Index() int                     { return t.index }
func (t *Touch) State() gainput.DeviceState      { return gainput.DeviceStateOK }
func (t *Touch) DeviceName() string              { return "touch" }

func (t *Touch) IsValidButton(id gainput.DeviceButtonID) bool {
	return id >= 0 && int(id) < AxisAllocCount
}
func (t *Touch) ButtonType(id gainput.DeviceButtonID) gainput.ButtonType { return ButtonType(Button(id)) }
func (t *Touch) ButtonName(id gainput.DeviceButtonID) string             { return ButtonName(Button(id)) }
func (t *Touch) ButtonByName(name string) (gainput.DeviceButtonID, bool) {
	b, ok := ButtonByName(name)
	return gainput.DeviceButtonID(b), ok
}

func (t *Touch) GetBool(id gainput.DeviceButtonID) bool     { return t.current.GetBool(id) }
func (t *Touch) GetFloat(id gainput.DeviceButtonID) float32 { return t.current.GetFloat(id) }

func (t *Touch) AnyButtonDown(out []gainput.DeviceButtonID) int {
	n := 0
	for i := 0; i < ButtonCount && n < len(out); i++ {
		id := gainput.DeviceButtonID(PointDown(i))
		if t.current.GetBool(id) {
			out[n] = id
			n++
		}
	}
	return n
}

func (t *Touch) IsLateUpdate() bool { return false }
func (t *Touch) IsSynced() bool     { return true }

// Update commits next into current and releases any point whose Down bit
// went false this tick, mirroring the mouse wheel's one-tick pulse: a
// touch-up event is a single observable true->false transition, not a
// state a caller has to separately clear.
func (t *Touch) Update(ds *gainput.DeltaState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current.CopyFrom(t.next)
}

// HandleButtonBool is the concurrent-queue entry point for a point's Down
// transition.
func (t *Touch) HandleButtonBool(button gainput.DeviceButtonID, down bool, ds *gainput.DeltaState) {
	t.mu.Lock()
	old := t.next.GetBool(button)
	t.next.SetBool(button, down)
	t.mu.Unlock()
	ds.RecordBool(t.id, button, old, down)
}

// HandleButtonFloat is the concurrent-queue entry point for a point's
// X/Y/Pressure axes.
func (t *Touch) HandleButtonFloat(button gainput.DeviceButtonID, value float32, ds *gainput.DeltaState) {
	t.mu.Lock()
	old := t.next.GetFloat(button)
	t.next.SetFloat(button, value)
	t.mu.Unlock()
	ds.RecordFloat(t.id, button, old, value)
}

// ClearAllStates forces every point up, used when the app is backgrounded
// mid-gesture.
func (t *Touch) ClearAllStates() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current.Clear()
	t.next.Clear()
}
