package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/domain/event"
)

func TestNewRiskAssessed(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	e := event.NewRiskAssessed(id, "pd=closed_form,lgd=closed_form", 0.41, 0.8, 4000, 1325.67, "MODERATE", at)

	assert.Equal(t, event.EventTypeRiskAssessed, e.EventType())
	assert.Equal(t, event.AggregateTypeRiskAssessment, e.AggregateType())
	assert.Equal(t, id, e.AggregateID())
	assert.True(t, e.OccurredAt().Equal(at))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(e.Payload(), &payload))
	assert.Equal(t, id.String(), payload["assessment_id"])
	assert.Equal(t, "MODERATE", payload["risk_band"])
	assert.InDelta(t, 1325.67, payload["el"], 1e-9)
	assert.NotContains(t, payload, "monthly_income")
}

func TestNewHighRiskDetected(t *testing.T) {
	id := uuid.New()
	at := time.Now().UTC()

	e := event.NewHighRiskDetected(id, 7200, at)

	assert.Equal(t, event.EventTypeHighRiskDetected, e.EventType())
	assert.Equal(t, id, e.AssessmentID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(e.Payload(), &payload))
	assert.InDelta(t, 7200.0, payload["el"], 1e-9)
}
