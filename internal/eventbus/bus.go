// Package eventbus is the in-process publish/subscribe surface the
// core emits lifecycle events on. Publishers never block: each
// subscriber has a bounded buffered channel and the oldest event is
// dropped on overflow.
package eventbus

import (
	"log"
	"sync"
	"time"
)

const defaultSubscriberCapacity = 64

// Lifecycle event types emitted by the simulator.
const (
	TypeCustomerArrived = "customer_arrived"
	TypeCustomerSeated  = "customer_seated"
	TypeCustomerLeft    = "customer_left"
	TypeOrderPlaced     = "order_placed"
	TypeCookingStarted  = "cooking_started"
	TypeOrderReady      = "order_ready"
	TypeFoodPickedUp    = "food_picked_up"
	TypeFoodDelivered   = "food_delivered"
	TypeFoodDiscarded   = "food_discarded"
	TypeCookingRefused  = "cooking_refused"
	TypeStateChanged    = "state_changed"
	TypeFundsChanged    = "funds_changed"
)

// Event is one published lifecycle notification. Data holds the typed
// event struct for the given Type.
type Event struct {
	Type string
	Time time.Time
	Data interface{}
}

// Subscription is one active listener. Close it when done; Events is
// closed afterwards.
type Subscription struct {
	Events <-chan Event
	cancel func()
}

func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Bus routes events to subscribers keyed by event type. The empty key
// subscribes to everything.
type Bus struct {
	mu       sync.RWMutex
	subs     map[string]map[*subscriber]struct{}
	capacity int
}

func New() *Bus {
	return &Bus{
		subs:     make(map[string]map[*subscriber]struct{}),
		capacity: defaultSubscriberCapacity,
	}
}

// Subscribe registers for events of the given type; the empty string
// subscribes to all types.
func (b *Bus) Subscribe(eventType string) Subscription {
	sub := newSubscriber(b.capacity)
	b.mu.Lock()
	if b.subs[eventType] == nil {
		b.subs[eventType] = make(map[*subscriber]struct{})
	}
	b.subs[eventType][sub] = struct{}{}
	b.mu.Unlock()
	return Subscription{
		Events: sub.ch,
		cancel: func() { b.remove(eventType, sub) },
	}
}

// Publish delivers the event to every matching subscriber without ever
// blocking the caller.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	targets := make([]*subscriber, 0, 4)
	for sub := range b.subs[event.Type] {
		targets = append(targets, sub)
	}
	for sub := range b.subs[""] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()
	for _, sub := range targets {
		sub.deliver(event)
	}
}

func (b *Bus) remove(eventType string, sub *subscriber) {
	b.mu.Lock()
	if set := b.subs[eventType]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, eventType)
		}
	}
	b.mu.Unlock()
	sub.close()
}

type subscriber struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

func newSubscriber(capacity int) *subscriber {
	return &subscriber{ch: make(chan Event, capacity)}
}

func (s *subscriber) deliver(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- event:
	default:
		// full: drop the oldest so the publisher never waits
		select {
		case dropped := <-s.ch:
			log.Printf("eventbus: dropped %s (subscriber overflow)", dropped.Type)
		default:
		}
		select {
		case s.ch <- event:
		default:
		}
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
