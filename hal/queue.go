package hal

import "sync/atomic"

const queueSlots = 256

// EventQueue is a fixed-size single-consumer ring of window events. Backends
// that gather input outside the pump (ebiten, headless) post into it and
// PollEvent drains it.
type EventQueue struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [queueSlots]Event
}

// TryPost attempts to enqueue an event, returning false if the queue is full.
func (q *EventQueue) TryPost(ev Event) bool {
	head := q.head.Load()
	tail := q.tail.Load()
	if head-tail >= queueSlots {
		return false
	}

	if !q.head.CompareAndSwap(head, head+1) {
		return false
	}

	q.slots[head%queueSlots] = ev
	return true
}

// TryNext attempts to dequeue one event, returning false if empty.
func (q *EventQueue) TryNext() (Event, bool) {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail == head {
		return nil, false
	}

	ev := q.slots[tail%queueSlots]
	q.slots[tail%queueSlots] = nil
	q.tail.Store(tail + 1)
	return ev, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return int(q.head.Load() - q.tail.Load())
}
