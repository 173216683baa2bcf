package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent carries the metadata shared by every domain event. Concrete
// events embed it and add typed fields.
type BaseEvent struct {
	occurredAt    time.Time
	eventType     string
	aggregateType string
	payload       []byte
	id            uuid.UUID
	aggregateID   uuid.UUID
}

// Option adjusts a BaseEvent under construction.
type Option func(*BaseEvent)

// At stamps the event with the moment the underlying fact happened instead of
// the construction time.
func At(t time.Time) Option {
	return func(e *BaseEvent) { e.occurredAt = t }
}

// WithID fixes the event ID, for replaying an event under its original ID.
func WithID(id uuid.UUID) Option {
	return func(e *BaseEvent) { e.id = id }
}

// NewBaseEvent creates a BaseEvent with a random ID. Timestamps are kept in UTC.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte, opts ...Option) BaseEvent {
	e := BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now(),
		payload:       payload,
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.occurredAt = e.occurredAt.UTC()
	return e
}

func (e BaseEvent) EventID() uuid.UUID     { return e.id }
func (e BaseEvent) EventType() string      { return e.eventType }
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }
func (e BaseEvent) AggregateType() string  { return e.aggregateType }
func (e BaseEvent) OccurredAt() time.Time  { return e.occurredAt }

// Payload returns the JSON-encoded event body.
func (e BaseEvent) Payload() []byte { return e.payload }
