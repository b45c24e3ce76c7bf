package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-engine/internal/parking"
)

func TestBroadcasterFanOut(t *testing.T) {
	b := NewBroadcaster()

	first := b.subscribe()
	second := b.subscribe()
	defer b.unsubscribe(first)
	defer b.unsubscribe(second)

	ev := parking.Event{
		Type:      parking.EventSlotOccupied,
		SlotID:    "L1-REG-S-01",
		TicketID:  "ABCD1234",
		Timestamp: time.Now(),
	}
	b.dispatch(ev)

	assert.Equal(t, ev, <-first)
	assert.Equal(t, ev, <-second)
}

func TestBroadcasterDropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster()

	sub := b.subscribe()
	defer b.unsubscribe(sub)

	// Overfill the subscriber buffer without reading; dispatch must not
	// block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			b.dispatch(parking.Event{Type: parking.EventSlotFreed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on a slow subscriber")
	}

	assert.Len(t, sub, subscriberBuffer)
}

func TestBroadcasterRunForwardsEngineEvents(t *testing.T) {
	b := NewBroadcaster()
	engine := parking.NewEngine(parking.DefaultTopology(), parking.DefaultPricing())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx, engine.Events())

	sub := b.subscribe()
	defer b.unsubscribe(sub)

	res, err := engine.Allocate(parking.Request{LicensePlate: "KA01HH1234", Size: parking.SizeSmall})
	require.NoError(t, err)

	select {
	case ev := <-sub:
		assert.Equal(t, parking.EventSlotOccupied, ev.Type)
		assert.Equal(t, res.SlotID, ev.SlotID)
	case <-time.After(time.Second):
		t.Fatal("expected event was not forwarded")
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	sub := b.subscribe()
	b.unsubscribe(sub)

	b.dispatch(parking.Event{Type: parking.EventSlotOccupied})
	assert.Empty(t, sub)
}
