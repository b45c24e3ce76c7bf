package parking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketState int

const (
	TicketActive TicketState = iota
	TicketReleased
)

func (s TicketState) String() string {
	if s == TicketReleased {
		return "Released"
	}
	return "Active"
}

// Ticket records one vehicle's occupancy of a slot. While Active it is
// the sole holder of the right to release that slot. Released is
// terminal; a new parking event always issues a new ticket.
type Ticket struct {
	ID           string
	LicensePlate string
	Size         SizeClass
	Customer     CustomerType
	IsEV         bool
	SlotID       string
	EntryTime    time.Time
	State        TicketState
	ReleaseTime  time.Time
	Fee          int64
}

func newTicketID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// TicketRegistry maps active tickets to occupied slots and enforces the
// one-active-ticket-per-plate rule. Like Inventory it carries no lock of
// its own; the engine serializes access.
type TicketRegistry struct {
	active   map[string]*Ticket
	released map[string]*Ticket
	byPlate  map[string][]*Ticket
}

func NewTicketRegistry() *TicketRegistry {
	return &TicketRegistry{
		active:   make(map[string]*Ticket),
		released: make(map[string]*Ticket),
		byPlate:  make(map[string][]*Ticket),
	}
}

// HasActivePlate reports whether any Active ticket exists for plate.
func (r *TicketRegistry) HasActivePlate(plate string) bool {
	return len(r.byPlate[plate]) > 0
}

// Create issues a new Active ticket for the given occupancy. allowMulti
// permits additional concurrent tickets for the same plate, which is the
// VIP-with-active-pass privilege.
func (r *TicketRegistry) Create(req Request, slotID string, now time.Time, allowMulti bool) (*Ticket, error) {
	if r.HasActivePlate(req.LicensePlate) && !allowMulti {
		return nil, fmt.Errorf("%w: plate %s", ErrDuplicateVehicle, req.LicensePlate)
	}

	t := &Ticket{
		ID:           newTicketID(),
		LicensePlate: req.LicensePlate,
		Size:         req.Size,
		Customer:     req.Customer,
		IsEV:         req.IsEV,
		SlotID:       slotID,
		EntryTime:    now,
		State:        TicketActive,
	}
	r.active[t.ID] = t
	r.byPlate[t.LicensePlate] = append(r.byPlate[t.LicensePlate], t)
	return t, nil
}

// Lookup finds an Active ticket.
func (r *TicketRegistry) Lookup(id string) (*Ticket, error) {
	t, ok := r.active[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTicket, id)
	}
	return t, nil
}

// FindByPlate returns the Active tickets for a plate, oldest first.
func (r *TicketRegistry) FindByPlate(plate string) []*Ticket {
	return r.byPlate[plate]
}

// Release transitions a ticket to Released. Releasing an unknown or
// already Released ticket fails with ErrInvalidTicket.
func (r *TicketRegistry) Release(id string, now time.Time, fee int64) (*Ticket, error) {
	t, ok := r.active[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTicket, id)
	}

	t.State = TicketReleased
	t.ReleaseTime = now
	t.Fee = fee
	delete(r.active, id)
	r.released[id] = t

	plate := t.LicensePlate
	remaining := r.byPlate[plate][:0]
	for _, other := range r.byPlate[plate] {
		if other.ID != id {
			remaining = append(remaining, other)
		}
	}
	if len(remaining) == 0 {
		delete(r.byPlate, plate)
	} else {
		r.byPlate[plate] = remaining
	}
	return t, nil
}

// discard removes a ticket that never committed, without recording it in
// the released history.
func (r *TicketRegistry) discard(id string) {
	t, ok := r.active[id]
	if !ok {
		return
	}
	delete(r.active, id)

	plate := t.LicensePlate
	remaining := r.byPlate[plate][:0]
	for _, other := range r.byPlate[plate] {
		if other.ID != id {
			remaining = append(remaining, other)
		}
	}
	if len(remaining) == 0 {
		delete(r.byPlate, plate)
	} else {
		r.byPlate[plate] = remaining
	}
}

func (r *TicketRegistry) ActiveCount() int {
	return len(r.active)
}
