package service

import (
	"sync"
	"time"

	"equiprent-backend/internal/logger"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInventoryChanged EventType = "inventory_changed"
	EventBookingChanged   EventType = "booking_changed"
	EventPricingChanged   EventType = "pricing_changed"
)

// Event is a change notification emitted after every committed
// mutation. Entity identifies the affected record for subscribers that
// want to refresh selectively.
type Event struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	Entity string    `json:"entity"`
	At     time.Time `json:"at"`
}

// Notifier is the write side of change notifications. Services publish
// after committing; delivery is someone else's problem.
type Notifier interface {
	Publish(evt Event)
}

// Broadcaster fans change events out to in-process subscribers (the SSE
// handler, the log). Slow subscribers drop events rather than block a
// committed mutation.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string]chan Event)}
}

func (b *Broadcaster) Publish(evt Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			logger.Warn("Dropping change event for slow subscriber", "type", evt.Type, "entity", evt.Entity)
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be
// called to release the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	id := uuid.NewString()
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}
