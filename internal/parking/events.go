package parking

import "time"

type EventType string

const (
	EventSlotOccupied EventType = "slot_occupied"
	EventSlotFreed    EventType = "slot_freed"
)

// Event describes one authoritative state change. The engine defines the
// schema; delivery to subscribers is the broadcaster's concern.
type Event struct {
	Type      EventType `json:"type"`
	SlotID    string    `json:"slot_id"`
	TicketID  string    `json:"ticket_id"`
	Fee       int64     `json:"fee,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
