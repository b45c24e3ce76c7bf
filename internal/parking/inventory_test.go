package parking

import "testing"

func testTopology() []SlotSpec {
	return []SlotSpec{
		{Level: 1, Section: SectionRegular, Size: SizeSmall, Count: 2},
		{Level: 1, Section: SectionRegular, Size: SizeMedium, Count: 2},
		{Level: 2, Section: SectionVIP, Size: SizeMedium, Count: 1},
	}
}

func TestNewInventory(t *testing.T) {
	inv := NewInventory(testTopology())

	if inv.Capacity() != 5 {
		t.Errorf("Expected capacity 5, got %d", inv.Capacity())
	}

	for _, slot := range inv.ListSlots() {
		if slot.Status != SlotFree {
			t.Errorf("Expected slot %s to be free", slot.ID)
		}
		if slot.TicketID != "" {
			t.Errorf("Expected slot %s to have no ticket reference", slot.ID)
		}
	}
}

func TestInventorySlotIDs(t *testing.T) {
	inv := NewInventory(testTopology())

	slot, ok := inv.Get("L1-REG-S-01")
	if !ok {
		t.Fatal("Expected slot L1-REG-S-01 to exist")
	}
	if slot.Level != 1 || slot.Index != 1 || slot.Size != SizeSmall || slot.Section != SectionRegular {
		t.Errorf("Unexpected slot attributes: %+v", slot)
	}

	if _, ok := inv.Get("L9-REG-S-01"); ok {
		t.Error("Expected unknown slot id to be absent")
	}
}

func TestInventoryTrySet(t *testing.T) {
	inv := NewInventory(testTopology())

	err := inv.TrySet("L1-REG-S-01", SlotFree, SlotOccupiedStatus, "T1")
	if err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}

	slot, _ := inv.Get("L1-REG-S-01")
	if slot.Status != SlotOccupiedStatus {
		t.Error("Expected slot to be occupied")
	}
	if slot.TicketID != "T1" {
		t.Errorf("Expected ticket reference T1, got %q", slot.TicketID)
	}

	// Second occupy on the same slot must fail the compare-and-set.
	err = inv.TrySet("L1-REG-S-01", SlotFree, SlotOccupiedStatus, "T2")
	if err == nil {
		t.Error("Expected conflict when occupying an occupied slot")
	}
	if slot.TicketID != "T1" {
		t.Error("Expected ticket reference to be unchanged after conflict")
	}

	err = inv.TrySet("L1-REG-S-01", SlotOccupiedStatus, SlotFree, "")
	if err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}
	if slot.Status != SlotFree {
		t.Error("Expected slot to be free after release")
	}
	if slot.TicketID != "" {
		t.Error("Expected ticket reference to be cleared")
	}
}

func TestInventorySnapshotOrder(t *testing.T) {
	inv := NewInventory(testTopology())

	views := inv.Snapshot()
	expected := []string{"L1-REG-S-01", "L1-REG-S-02", "L1-REG-M-01", "L1-REG-M-02", "L2-VIP-M-01"}

	if len(views) != len(expected) {
		t.Fatalf("Expected %d views, got %d", len(expected), len(views))
	}
	for i, id := range expected {
		if views[i].ID != id {
			t.Errorf("Expected view %d to be %s, got %s", i, id, views[i].ID)
		}
	}
}
