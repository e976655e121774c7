// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package gainput

// DeviceStateModifier is a per-frame hook that runs between the
// not-late-update devices and the late-update devices, and may rewrite
// any device's state in between — an axis inverter or a stick-combining
// filter are the canonical uses.
type DeviceStateModifier interface {
	Update(ds *DeltaState)
}

type registeredModifier struct {
	id       ModifierID
	modifier DeviceStateModifier
}

type modifierTable struct {
	entries []registeredModifier
	nextID  ModifierID
}

func (t *modifierTable) add(m DeviceStateModifier) ModifierID {
	t.nextID++
	id := t.nextID
	t.entries = append(t.entries, registeredModifier{id: id, modifier: m})
	return id
}

func (t *modifierTable) remove(id ModifierID) {
	for i, e := range t.entries {
		if e.id == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

func (t *modifierTable) update(ds *DeltaState) {
	for _, e := range t.entries {
		e.modifier.Update(ds)
	}
}
