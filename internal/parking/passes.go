package parking

import (
	"time"

	"github.com/google/uuid"
)

// PassDuration is the validity window of one monthly pass purchase.
const PassDuration = 30 * 24 * time.Hour

// Pass is a prepaid flat-rate parking entitlement for one size class
// under one customer key. A pass expires by date comparison and is never
// explicitly deleted.
type Pass struct {
	ID          string
	CustomerKey string
	Size        SizeClass
	IssuedAt    time.Time
	ExpiresAt   time.Time
	AmountPaid  int64
}

// Active reports whether the pass covers size at the given instant.
func (p *Pass) Active(size SizeClass, now time.Time) bool {
	return p.Size == size && now.Before(p.ExpiresAt)
}

// PassRegistry tracks monthly passes per customer key. One pass per size
// class per customer: a repeat purchase extends the existing pass rather
// than stacking a second one.
type PassRegistry struct {
	passes map[string]map[SizeClass]*Pass
}

func NewPassRegistry() *PassRegistry {
	return &PassRegistry{passes: make(map[string]map[SizeClass]*Pass)}
}

// Purchase creates or extends the pass for (customerKey, size). Extension
// adds PassDuration to the later of now and the current expiry, so paid
// time is never lost by renewing early.
func (r *PassRegistry) Purchase(customerKey string, size SizeClass, now time.Time, price int64) *Pass {
	bySize := r.passes[customerKey]
	if bySize == nil {
		bySize = make(map[SizeClass]*Pass)
		r.passes[customerKey] = bySize
	}

	if existing, ok := bySize[size]; ok {
		base := now
		if existing.ExpiresAt.After(now) {
			base = existing.ExpiresAt
		}
		existing.ExpiresAt = base.Add(PassDuration)
		existing.AmountPaid += price
		return existing
	}

	pass := &Pass{
		ID:          uuid.New().String(),
		CustomerKey: customerKey,
		Size:        size,
		IssuedAt:    now,
		ExpiresAt:   now.Add(PassDuration),
		AmountPaid:  price,
	}
	bySize[size] = pass
	return pass
}

// ActivePass returns the unexpired pass covering (customerKey, size), or
// nil when none exists.
func (r *PassRegistry) ActivePass(customerKey string, size SizeClass, now time.Time) *Pass {
	if pass, ok := r.passes[customerKey][size]; ok && pass.Active(size, now) {
		return pass
	}
	return nil
}
