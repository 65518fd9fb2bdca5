package ecs

// EventKind identifies a user interaction routed to an exhibit entity.
type EventKind string

const (
	EventFocus    EventKind = "focus"
	EventSelect   EventKind = "select"
	EventDeselect EventKind = "deselect"
	EventAction   EventKind = "action"
)

// Event is a user interaction targeting one entity. Index is only read for
// EventAction.
type Event struct {
	Kind   EventKind
	Entity Entity
	Index  int
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

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
