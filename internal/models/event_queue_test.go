package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueOrdersByTime(t *testing.T) {
	q := NewEventQueue()
	base := time.Now()

	q.Enqueue(&Event{Time: base.Add(3 * time.Second), Type: "c"})
	q.Enqueue(&Event{Time: base.Add(1 * time.Second), Type: "a"})
	q.Enqueue(&Event{Time: base.Add(2 * time.Second), Type: "b"})

	assert.Equal(t, "a", q.Peek().Type)
	assert.Equal(t, "a", q.Dequeue().Type)
	assert.Equal(t, "b", q.Dequeue().Type)
	assert.Equal(t, "c", q.Dequeue().Type)
	assert.Nil(t, q.Dequeue())
}

func TestEventQueueDueBefore(t *testing.T) {
	q := NewEventQueue()
	base := time.Now()

	q.Enqueue(&Event{Time: base.Add(1 * time.Second), Type: "a"})
	q.Enqueue(&Event{Time: base.Add(2 * time.Second), Type: "b"})
	q.Enqueue(&Event{Time: base.Add(5 * time.Second), Type: "c"})

	due := q.DueBefore(base.Add(2 * time.Second))
	assert.Len(t, due, 2)
	assert.Equal(t, "a", due[0].Type)
	assert.Equal(t, "b", due[1].Type)
	assert.Equal(t, 1, q.Len())

	assert.Empty(t, q.DueBefore(base.Add(3*time.Second)))
}
