package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"parking-engine/internal/logging"
	"parking-engine/internal/parking"
)

const subscriberBuffer = 16

// Broadcaster fans engine events out to Server-Sent Events subscribers.
// Delivery is best effort: a subscriber that does not keep up has events
// dropped, the engine is never blocked.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan parking.Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan parking.Event]struct{}),
	}
}

// Run consumes the event stream until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context, events <-chan parking.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			b.dispatch(ev)
		}
	}
}

func (b *Broadcaster) dispatch(ev parking.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subscribers {
		select {
		case sub <- ev:
		default:
			// Slow subscriber, drop the event for it.
		}
	}
}

func (b *Broadcaster) subscribe() chan parking.Event {
	ch := make(chan parking.Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) unsubscribe(ch chan parking.Event) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
}

// ServeHTTP streams events to one client as Server-Sent Events.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(r.Context(), w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := b.subscribe()
	defer b.unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub:
			payload, err := json.Marshal(ev)
			if err != nil {
				logging.Logger().Error().Err(err).Msg("failed to encode event")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}
