package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire form of a DomainEvent. BaseEvent keeps its fields
// unexported, so publishers serialise events through an Envelope rather than
// marshalling the event value directly.
type Envelope struct {
	OccurredAt    time.Time       `json:"occurred_at"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	Payload       json.RawMessage `json:"payload"`
	ID            uuid.UUID       `json:"id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
}

// NewEnvelope copies the metadata and payload of a DomainEvent.
func NewEnvelope(event DomainEvent) Envelope {
	payload := event.Payload()
	if len(payload) == 0 {
		payload = []byte("null")
	}
	return Envelope{
		ID:            event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	}
}

// MarshalEvent encodes a DomainEvent as an Envelope JSON document.
func MarshalEvent(event DomainEvent) ([]byte, error) {
	data, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", event.EventID(), err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes an Envelope produced by MarshalEvent.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	return env, nil
}
