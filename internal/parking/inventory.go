package parking

import "fmt"

// Inventory holds the static slot topology. Slots are created once at
// startup and never destroyed; only their occupancy mutates, and every
// mutation goes through TrySet. Inventory itself carries no lock, the
// engine serializes access.
type Inventory struct {
	slots []*Slot
	byID  map[string]*Slot
}

func NewInventory(topology []SlotSpec) *Inventory {
	inv := &Inventory{byID: make(map[string]*Slot)}
	for _, spec := range topology {
		for i := 1; i <= spec.Count; i++ {
			slot := NewSlot(spec.Level, i, spec.Size, spec.Section)
			inv.slots = append(inv.slots, slot)
			inv.byID[slot.ID] = slot
		}
	}
	return inv
}

// ListSlots returns all slots in stable topology order.
func (inv *Inventory) ListSlots() []*Slot {
	return inv.slots
}

func (inv *Inventory) Get(id string) (*Slot, bool) {
	slot, ok := inv.byID[id]
	return slot, ok
}

// TrySet is an atomic compare-and-set on one slot's occupancy. It fails
// with ErrSlotConflict when the slot's current status does not match
// expect, which guards against lost updates under concurrent allocation.
func (inv *Inventory) TrySet(id string, expect, next SlotStatus, ticketID string) error {
	slot, ok := inv.byID[id]
	if !ok {
		return fmt.Errorf("%w: unknown slot %s", ErrSlotConflict, id)
	}
	if slot.Status != expect {
		return fmt.Errorf("%w: slot %s is %s", ErrSlotConflict, id, slot.Status)
	}
	slot.Status = next
	if next == SlotOccupiedStatus {
		slot.TicketID = ticketID
	} else {
		slot.TicketID = ""
	}
	return nil
}

// Snapshot returns immutable views of every slot in topology order.
func (inv *Inventory) Snapshot() []SlotView {
	views := make([]SlotView, len(inv.slots))
	for i, slot := range inv.slots {
		views[i] = slot.View()
	}
	return views
}

func (inv *Inventory) Capacity() int {
	return len(inv.slots)
}

func (inv *Inventory) OccupiedCount() int {
	n := 0
	for _, slot := range inv.slots {
		if slot.Status == SlotOccupiedStatus {
			n++
		}
	}
	return n
}
