package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/domain/event"
	"github.com/aharo8014/Credit/pkg/events"
	"github.com/aharo8014/Credit/pkg/kafka"
)

func message(t *testing.T, e events.DomainEvent) kafka.Message {
	t.Helper()
	data, err := events.MarshalEvent(e)
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestWatcher_TalliesBandsAndAlerts(t *testing.T) {
	w := newWatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	now := time.Now()

	const estimator = "pd=closed_form,lgd=closed_form"
	highID := uuid.New()

	require.NoError(t, w.Handle(ctx, message(t, event.NewRiskAssessed(uuid.New(), estimator, 0.41, 0.8, 4000, 1325.67, "MODERATE", now))))
	require.NoError(t, w.Handle(ctx, message(t, event.NewRiskAssessed(highID, estimator, 0.9, 0.85, 10000, 7650, "HIGH", now))))
	require.NoError(t, w.Handle(ctx, message(t, event.NewHighRiskDetected(highID, 7650, now))))
	require.NoError(t, w.Handle(ctx, message(t, events.NewBaseEvent("other.event", uuid.New(), "Other", nil))))

	sum := w.Summary()
	assert.Equal(t, map[string]int{"MODERATE": 1, "HIGH": 1}, sum.Bands)
	assert.Equal(t, 1, sum.HighRisk)
	assert.Equal(t, 1, sum.Unknown)
}

func TestWatcher_RejectsUnknownBand(t *testing.T) {
	w := newWatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := w.Handle(context.Background(), message(t,
		event.NewRiskAssessed(uuid.New(), "pd=closed_form,lgd=closed_form", 0.1, 0.5, 100, 5, "SEVERE", time.Now())))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid risk band")
	assert.Empty(t, w.Summary().Bands)
}

func TestWatcher_RejectsGarbage(t *testing.T) {
	w := newWatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, w.Handle(context.Background(), kafka.Message{Value: []byte("not json")}))
}
