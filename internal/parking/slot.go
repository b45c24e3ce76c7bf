package parking

import "fmt"

type SlotStatus int

const (
	SlotFree SlotStatus = iota
	SlotOccupiedStatus
)

func (s SlotStatus) String() string {
	if s == SlotOccupiedStatus {
		return "Occupied"
	}
	return "Free"
}

// Slot is a single physical parking space. Level, index, size, and section
// are fixed at startup; only Status and TicketID mutate. TicketID is a
// back-reference only, the ticket owns the occupancy.
type Slot struct {
	ID       string
	Level    int
	Index    int
	Size     SizeClass
	Section  Section
	Status   SlotStatus
	TicketID string
}

func NewSlot(level, index int, size SizeClass, section Section) *Slot {
	return &Slot{
		ID:      SlotID(level, section, size, index),
		Level:   level,
		Index:   index,
		Size:    size,
		Section: section,
		Status:  SlotFree,
	}
}

// SlotID builds the canonical slot identifier, e.g. "L1-REG-M-02".
func SlotID(level int, section Section, size SizeClass, index int) string {
	return fmt.Sprintf("L%d-%s-%s-%02d", level, section.Code(), size.Code(), index)
}

// SlotView is an immutable snapshot of one slot, safe to hand to callers
// outside the engine lock.
type SlotView struct {
	ID       string    `json:"id"`
	Level    int       `json:"level"`
	Index    int       `json:"index"`
	Size     SizeClass `json:"-"`
	Section  Section   `json:"-"`
	Occupied bool      `json:"occupied"`
	TicketID string    `json:"ticket,omitempty"`
}

func (s *Slot) View() SlotView {
	return SlotView{
		ID:       s.ID,
		Level:    s.Level,
		Index:    s.Index,
		Size:     s.Size,
		Section:  s.Section,
		Occupied: s.Status == SlotOccupiedStatus,
		TicketID: s.TicketID,
	}
}
