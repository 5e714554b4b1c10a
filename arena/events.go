package arena

import "github.com/CoolKrit/Ronin/component"

// EventLog is a FIFO of combat events collected during frames.
type EventLog struct {
	items []component.CombatEvent
}

// Push adds an event.
func (q *EventLog) Push(evt component.CombatEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the log.
func (q *EventLog) Drain() []component.CombatEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len is the number of undrained events.
func (q *EventLog) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
