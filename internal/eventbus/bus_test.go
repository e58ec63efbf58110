package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversByType(t *testing.T) {
	bus := New()
	placed := bus.Subscribe(TypeOrderPlaced)
	defer placed.Close()
	all := bus.Subscribe("")
	defer all.Close()

	bus.Publish(Event{Type: TypeOrderPlaced, Data: "order"})
	bus.Publish(Event{Type: TypeFoodDelivered, Data: "plate"})

	got := <-placed.Events
	assert.Equal(t, "order", got.Data)
	select {
	case unexpected := <-placed.Events:
		t.Fatalf("typed subscriber got foreign event: %v", unexpected)
	default:
	}

	assert.Equal(t, "order", (<-all.Events).Data)
	assert.Equal(t, "plate", (<-all.Events).Data)
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := New()
	sub := bus.Subscribe(TypeStateChanged)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultSubscriberCapacity*3; i++ {
			bus.Publish(Event{Type: TypeStateChanged, Data: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	// oldest events were dropped; the newest survive
	var last int
	for {
		select {
		case e := <-sub.Events:
			last = e.Data.(int)
			continue
		default:
		}
		break
	}
	assert.Equal(t, defaultSubscriberCapacity*3-1, last)
}

func TestBusCloseStopsDelivery(t *testing.T) {
	bus := New()
	sub := bus.Subscribe(TypeCustomerLeft)
	sub.Close()

	bus.Publish(Event{Type: TypeCustomerLeft})
	_, open := <-sub.Events
	assert.False(t, open, "closed subscription channel must be closed")
}
