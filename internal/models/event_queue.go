package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventCustomerArrival = "CustomerArrival"
	EventTakeSnapshot    = "TakeSnapshot"
)

// Event is a scheduled simulation event, due at Time.
type Event struct {
	Time time.Time
	Type string
	Data interface{}
}

// EventQueue is a priority queue of scheduled events ordered by due
// time.
type EventQueue struct {
	events []*Event
	mutex  sync.Mutex
}

type eventHeap []*Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].Time.Before(h[j].Time) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]*Event, 0)}
}

// Enqueue adds an event to the queue.
func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	heap.Push((*eventHeap)(&eq.events), event)
}

// Dequeue removes and returns the earliest event, or nil.
func (eq *EventQueue) Dequeue() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop((*eventHeap)(&eq.events)).(*Event)
}

// Peek returns the earliest event without removing it.
func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// DueBefore removes and returns every event due at or before t, in due
// order.
func (eq *EventQueue) DueBefore(t time.Time) []*Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	var due []*Event
	for len(eq.events) > 0 && !eq.events[0].Time.After(t) {
		due = append(due, heap.Pop((*eventHeap)(&eq.events)).(*Event))
	}
	return due
}

func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}
