// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDevice is a minimal InputDevice used to exercise the manager's
// tick and registry logic without any platform back-end.
type fakeDevice struct {
	id         DeviceID
	typ        DeviceType
	variant    DeviceVariant
	index      int
	state      DeviceState
	late       bool
	synced     bool
	current    *InputState
	next       *InputState
	updates    int
	disconnect bool
	onUpdate   func()
}

func newFakeDevice(typ DeviceType) *fakeDevice {
	return &fakeDevice{
		typ:     typ,
		state:   DeviceStateOK,
		synced:  true,
		current: NewInputState(4, 2),
		next:    NewInputState(4, 2),
	}
}

func (f *fakeDevice) DeviceID() DeviceID            { return f.id }
func (f *fakeDevice) DeviceType() DeviceType        { return f.typ }
func (f *fakeDevice) Variant() DeviceVariant        { return f.variant }
func (f *fakeDevice) Index() int                    { return f.index }
func (f *fakeDevice) State() DeviceState            { return f.state }
func (f *fakeDevice) DeviceName() string            { return "fake" }
func (f *fakeDevice) IsValidButton(DeviceButtonID) bool { return true }
func (f *fakeDevice) ButtonType(DeviceButtonID) ButtonType { return ButtonTypeBool }
func (f *fakeDevice) ButtonName(DeviceButtonID) string { return "" }
func (f *fakeDevice) ButtonByName(string) (DeviceButtonID, bool) { return InvalidDeviceButtonID, false }
func (f *fakeDevice) GetBool(id DeviceButtonID) bool    { return f.current.GetBool(id) }
func (f *fakeDevice) GetFloat(id DeviceButtonID) float32 { return f.current.GetFloat(id) }
func (f *fakeDevice) AnyButtonDown(out []DeviceButtonID) int {
	n := 0
	for i := 0; i < f.current.BoolCount() && n < len(out); i++ {
		if f.current.GetBool(DeviceButtonID(i)) {
			out[n] = DeviceButtonID(i)
			n++
		}
	}
	return n
}
func (f *fakeDevice) IsLateUpdate() bool { return f.late }
func (f *fakeDevice) IsSynced() bool     { return f.synced }

// Update commits next into current. Delta recording happens earlier, at
// HandleButtonBool/HandleButtonFloat time (either from the concurrent
// queue drain or from a platform event handler), not here — Update's job
// is only to publish the already-recorded next state.
func (f *fakeDevice) Update(ds *DeltaState) {
	f.updates++
	if f.onUpdate != nil {
		f.onUpdate()
	}
	f.current.CopyFrom(f.next)
}

func (f *fakeDevice) HandleButtonBool(button DeviceButtonID, value bool, ds *DeltaState) {
	old := f.next.GetBool(button)
	f.next.SetBool(button, value)
	ds.RecordBool(f.id, button, old, value)
}

func (f *fakeDevice) HandleButtonFloat(button DeviceButtonID, value float32, ds *DeltaState) {
	old := f.next.GetFloat(button)
	f.next.SetFloat(button, value)
	ds.RecordFloat(f.id, button, old, value)
}

func newTestManager(t *testing.T) *InputManager {
	t.Helper()
	m := NewManager(NewConfig())
	m.Init()
	t.Cleanup(m.Exit)
	return m
}

func registerFake(m *InputManager, typ DeviceType) (*fakeDevice, DeviceID) {
	dev := newFakeDevice(typ)
	id := m.RegisterDevice(dev, func(id DeviceID) { dev.id = id })
	return dev, id
}

func TestManagerInitTwiceViolates(t *testing.T) {
	m := NewManager(NewConfig())
	m.Init()
	defer m.Exit()
	require.Panics(t, func() { m.Init() })
}

func TestManagerUpdateBeforeInitViolates(t *testing.T) {
	m := NewManager(NewConfig())
	require.Panics(t, func() { m.Update(0.016) })
}

func TestManagerDeviceIDsUniqueAndIncreasing(t *testing.T) {
	m := newTestManager(t)
	_, id1 := registerFake(m, DeviceTypeKeyboard)
	_, id2 := registerFake(m, DeviceTypeMouse)
	require.NotEqual(t, id1, id2)
	require.Greater(t, id2, id1)
	require.Equal(t, id1, m.GetDevice(id1).DeviceID())
}

func TestManagerFindDeviceID(t *testing.T) {
	m := newTestManager(t)
	_, kbID := registerFake(m, DeviceTypeKeyboard)
	_, padID := registerFake(m, DeviceTypePad)
	require.Equal(t, kbID, m.FindDeviceID(DeviceTypeKeyboard, 0))
	require.Equal(t, padID, m.FindDeviceID(DeviceTypePad, 0))
	require.Equal(t, InvalidDeviceID, m.FindDeviceID(DeviceTypeTouch, 0))
	require.Equal(t, padID, m.FindDeviceIDByTypeName("pad", 0))
}

func TestManagerGetDeviceCountByType(t *testing.T) {
	m := newTestManager(t)
	registerFake(m, DeviceTypePad)
	registerFake(m, DeviceTypePad)
	registerFake(m, DeviceTypeKeyboard)
	require.Equal(t, 2, m.GetDeviceCountByType(DeviceTypePad))
	require.Equal(t, 1, m.GetDeviceCountByType(DeviceTypeKeyboard))
}

func TestManagerEnqueueAndDrainAppliesChange(t *testing.T) {
	m := newTestManager(t)
	dev, id := registerFake(m, DeviceTypeKeyboard)

	var notified []bool
	m.AddListener(&recordingListener{onBool: func(d DeviceID, b DeviceButtonID, old, new bool) bool {
		notified = append(notified, new)
		return false
	}})

	m.EnqueueChangeBool(id, 2, true)
	m.Update(0.016)

	require.True(t, dev.GetBool(2))
	require.Equal(t, []bool{true}, notified)
}

// recordingListener is a Listener built from plain funcs, used to assert
// on notification order and content without a bespoke type per test.
type recordingListener struct {
	priority int
	onBool   func(DeviceID, DeviceButtonID, bool, bool) bool
	onFloat  func(DeviceID, DeviceButtonID, float32, float32) bool
}

func (r *recordingListener) Priority() int { return r.priority }
func (r *recordingListener) OnDeviceButtonBool(d DeviceID, b DeviceButtonID, old, new bool) bool {
	if r.onBool != nil {
		return r.onBool(d, b, old, new)
	}
	return false
}
func (r *recordingListener) OnDeviceButtonFloat(d DeviceID, b DeviceButtonID, old, new float32) bool {
	if r.onFloat != nil {
		return r.onFloat(d, b, old, new)
	}
	return false
}

// TestManagerListenerPriorityConsumedStopsPropagation is scenario S6: the
// higher-priority listener sees the change first, and if it consumes the
// change, the lower-priority listener never sees it.
func TestManagerListenerPriorityConsumedStopsPropagation(t *testing.T) {
	m := newTestManager(t)
	_, id := registerFake(m, DeviceTypeKeyboard)

	var order []int
	low := &recordingListener{priority: 5, onBool: func(DeviceID, DeviceButtonID, bool, bool) bool {
		order = append(order, 5)
		return false
	}}
	high := &recordingListener{priority: 10, onBool: func(DeviceID, DeviceButtonID, bool, bool) bool {
		order = append(order, 10)
		return true
	}}
	m.AddListener(low)
	m.AddListener(high)

	m.EnqueueChangeBool(id, 0, true)
	m.Update(0.016)

	require.Equal(t, []int{10}, order)
}

func TestManagerRemoveDeviceDrainsAtTickEnd(t *testing.T) {
	m := newTestManager(t)
	_, id := registerFake(m, DeviceTypeKeyboard)
	require.NotNil(t, m.GetDevice(id))

	m.RemoveDevice(id)
	require.NotNil(t, m.GetDevice(id), "removal must not take effect before the tick completes")

	m.Update(0.016)
	require.Nil(t, m.GetDevice(id))
}

func TestManagerLateUpdateRunsAfterModifiers(t *testing.T) {
	m := newTestManager(t)
	early, _ := registerFake(m, DeviceTypeKeyboard)
	late, _ := registerFake(m, DeviceTypeMouse)
	late.late = true

	var order []string
	early.onUpdate = func() { order = append(order, "early") }
	late.onUpdate = func() { order = append(order, "late") }
	m.AddDeviceStateModifier(modifierFunc(func(*DeltaState) { order = append(order, "modifier") }))

	m.Update(0.016)
	require.Equal(t, []string{"early", "modifier", "late"}, order)
}

type modifierFunc func(*DeltaState)

func (f modifierFunc) Update(ds *DeltaState) { f(ds) }
