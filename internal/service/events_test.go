package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster(t *testing.T) {
	t.Run("DeliversToSubscribers", func(t *testing.T) {
		b := NewBroadcaster()
		ch, cancel := b.Subscribe()
		defer cancel()

		b.Publish(Event{Type: EventBookingChanged, Entity: "42"})

		select {
		case evt := <-ch:
			assert.Equal(t, EventBookingChanged, evt.Type)
			assert.Equal(t, "42", evt.Entity)
			assert.NotEmpty(t, evt.ID)
			assert.False(t, evt.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}
	})

	t.Run("CancelStopsDelivery", func(t *testing.T) {
		b := NewBroadcaster()
		ch, cancel := b.Subscribe()
		cancel()

		// Publishing after cancel must not panic or block.
		b.Publish(Event{Type: EventInventoryChanged, Entity: "1"})

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("SlowSubscriberDoesNotBlockPublish", func(t *testing.T) {
		b := NewBroadcaster()
		_, cancel := b.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			// More events than the subscriber buffer holds.
			for i := 0; i < 100; i++ {
				b.Publish(Event{Type: EventPricingChanged, Entity: "cat"})
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
	})
}
