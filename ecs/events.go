package ecs

// Event is a discrete notification raised during a tick and drained by the
// simulation once the tick completes.
type Event struct {
	Type string
	Data any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Has reports whether an event of typ is queued.
func (q *EventQueue) Has(typ string) bool {
	if q == nil {
		return false
	}
	for _, evt := range q.items {
		if evt.Type == typ {
			return true
		}
	}
	return false
}
