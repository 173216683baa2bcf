package events

import "slices"

// EventCollector is embedded in aggregates to buffer the domain events raised
// while the aggregate is built, until the application layer publishes them.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers domain events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Events returns a copy of the buffered events.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.pending)
}

// ClearEvents hands over the buffered events and empties the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	out := c.pending
	c.pending = nil
	return out
}
