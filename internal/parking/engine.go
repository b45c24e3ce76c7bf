package parking

import (
	"math"
	"sync"
	"time"
)

const eventBuffer = 64

// Engine is the facade owning all mutable parking state. Every mutating
// operation runs under a single exclusive lock over the combined
// inventory and ticket registry, which preserves the at-most-one-occupant
// invariant. Read operations take a brief shared lock and return
// immutable snapshots.
type Engine struct {
	mu        sync.RWMutex
	inventory *Inventory
	tickets   *TicketRegistry
	passes    *PassRegistry
	pricing   *Pricing

	events chan Event

	now func() time.Time
}

type EngineOption func(*Engine)

// WithClock overrides the engine's time source, used by tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(topology []SlotSpec, pricing *Pricing, opts ...EngineOption) *Engine {
	e := &Engine{
		inventory: NewInventory(topology),
		tickets:   NewTicketRegistry(),
		passes:    NewPassRegistry(),
		pricing:   pricing,
		events:    make(chan Event, eventBuffer),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Events is the stream of state-change events. Emission is
// fire-and-forget: when no consumer keeps up the oldest pending event is
// dropped rather than blocking an operation.
func (e *Engine) Events() <-chan Event {
	return e.events
}

func (e *Engine) publish(ev Event) {
	for {
		select {
		case e.events <- ev:
			return
		default:
			select {
			case <-e.events:
			default:
			}
		}
	}
}

// AllocationResult is the outcome of a successful Allocate.
type AllocationResult struct {
	Ticket  Ticket
	SlotID  string
	Level   int
	Section Section
}

// Allocate assigns the top-ranked compatible Free slot to the request and
// issues an Active ticket. The selection and the commit run under one
// exclusive lock; if the compare-and-set on the chosen slot still fails,
// selection is retried once against the refreshed inventory before the
// conflict is surfaced.
func (e *Engine) Allocate(req Request) (AllocationResult, error) {
	if err := req.Validate(); err != nil {
		return AllocationResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	entitled := e.passes.ActivePass(req.LicensePlate, req.Size, now) != nil

	if e.tickets.HasActivePlate(req.LicensePlate) && !(req.Customer == CustomerVIP && entitled) {
		return AllocationResult{}, ErrDuplicateVehicle
	}

	slotID, ticket, err := e.commitAllocation(req, now, entitled)
	if err != nil {
		// Lost race on the chosen slot: re-rank once against the
		// refreshed inventory, then give up.
		slotID, ticket, err = e.commitAllocation(req, now, entitled)
		if err != nil {
			return AllocationResult{}, err
		}
	}

	slot, _ := e.inventory.Get(slotID)
	e.publish(Event{
		Type:      EventSlotOccupied,
		SlotID:    slotID,
		TicketID:  ticket.ID,
		Timestamp: now,
	})

	return AllocationResult{
		Ticket:  *ticket,
		SlotID:  slotID,
		Level:   slot.Level,
		Section: slot.Section,
	}, nil
}

func (e *Engine) commitAllocation(req Request, now time.Time, entitled bool) (string, *Ticket, error) {
	slotID, err := SelectSlot(e.inventory, req, entitled)
	if err != nil {
		return "", nil, err
	}

	allowMulti := req.Customer == CustomerVIP && entitled
	ticket, err := e.tickets.Create(req, slotID, now, allowMulti)
	if err != nil {
		return "", nil, err
	}

	if err := e.inventory.TrySet(slotID, SlotFree, SlotOccupiedStatus, ticket.ID); err != nil {
		// Discard the ticket so the failed attempt leaves no trace.
		e.tickets.discard(ticket.ID)
		return "", nil, err
	}
	return slotID, ticket, nil
}

// ReleaseResult is the outcome of a successful Release.
type ReleaseResult struct {
	Ticket   Ticket
	SlotID   string
	Fee      int64
	Duration time.Duration
	Hours    float64
	PassUsed bool
}

// Release closes a ticket, frees its slot, and computes the fee. Under an
// active pass covering the ticket's size class the fee is zero; otherwise
// fee = max(minimumCharge, ceil(elapsedHours) * hourlyRate). Releasing
// the same ticket twice fails with ErrInvalidTicket on the second call.
func (e *Engine) Release(ticketID string) (ReleaseResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ticket, err := e.tickets.Lookup(ticketID)
	if err != nil {
		return ReleaseResult{}, err
	}

	now := e.now()
	elapsed := now.Sub(ticket.EntryTime)

	var fee int64
	passUsed := false
	if ticket.Customer == CustomerVIP && e.passes.ActivePass(ticket.LicensePlate, ticket.Size, now) != nil {
		passUsed = true
	} else {
		fee = e.computeFee(ticket.Size, elapsed)
	}

	if err := e.inventory.TrySet(ticket.SlotID, SlotOccupiedStatus, SlotFree, ""); err != nil {
		return ReleaseResult{}, err
	}
	released, err := e.tickets.Release(ticketID, now, fee)
	if err != nil {
		return ReleaseResult{}, err
	}

	e.publish(Event{
		Type:      EventSlotFreed,
		SlotID:    released.SlotID,
		TicketID:  released.ID,
		Fee:       fee,
		Timestamp: now,
	})

	return ReleaseResult{
		Ticket:   *released,
		SlotID:   released.SlotID,
		Fee:      fee,
		Duration: elapsed,
		Hours:    elapsed.Hours(),
		PassUsed: passUsed,
	}, nil
}

func (e *Engine) computeFee(size SizeClass, elapsed time.Duration) int64 {
	billedHours := int64(math.Ceil(elapsed.Hours()))
	if billedHours < 0 {
		billedHours = 0
	}
	fee := billedHours * e.pricing.HourlyRate(size)
	if min := e.pricing.MinimumCharge(); fee < min {
		fee = min
	}
	return fee
}

// PurchasePass charges the monthly pass price and creates or extends the
// pass for (customerKey, size). No slot state is touched.
func (e *Engine) PurchasePass(customerKey string, size SizeClass) (Pass, error) {
	if customerKey == "" {
		return Pass{}, ErrInvalidRequest
	}
	if size < SizeSmall || size > SizeLarge {
		return Pass{}, ErrInvalidRequest
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	pass := e.passes.Purchase(customerKey, size, now, e.pricing.MonthlyPassPrice(size))
	return *pass, nil
}

// Snapshot returns per-slot views in stable topology order, taken under a
// brief shared-read window.
func (e *Engine) Snapshot() []SlotView {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inventory.Snapshot()
}

// FindByPlate returns copies of the Active tickets for a plate, oldest
// first.
func (e *Engine) FindByPlate(plate string) []Ticket {
	e.mu.RLock()
	defer e.mu.RUnlock()

	actives := e.tickets.FindByPlate(plate)
	out := make([]Ticket, len(actives))
	for i, t := range actives {
		out[i] = *t
	}
	return out
}

// Occupancy returns (occupied, capacity) counts.
func (e *Engine) Occupancy() (int, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inventory.OccupiedCount(), e.inventory.Capacity()
}

// ActivePass reports the unexpired pass for (customerKey, size), if any.
func (e *Engine) ActivePass(customerKey string, size SizeClass) (Pass, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pass := e.passes.ActivePass(customerKey, size, e.now())
	if pass == nil {
		return Pass{}, false
	}
	return *pass, true
}
