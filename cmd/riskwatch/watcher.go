package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/aharo8014/Credit/internal/domain/event"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/pkg/events"
	"github.com/aharo8014/Credit/pkg/kafka"
)

// watcher logs assessment events and tallies them per risk band.
type watcher struct {
	logger *slog.Logger

	mu       sync.Mutex
	bands    map[string]int
	highRisk int
	unknown  int
}

func newWatcher(logger *slog.Logger) *watcher {
	return &watcher{logger: logger, bands: make(map[string]int)}
}

// Handle is a kafka.Handler. Undecodable messages are reported as errors so
// the consumer logs and skips them.
func (w *watcher) Handle(_ context.Context, msg kafka.Message) error {
	env, err := events.UnmarshalEnvelope(msg.Value)
	if err != nil {
		return err
	}

	switch env.EventType {
	case event.EventTypeRiskAssessed:
		var p event.RiskAssessed
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
		band, err := valueobject.RiskBandFromString(p.RiskBand)
		if err != nil {
			return fmt.Errorf("assessment %s: %w", p.AssessmentID, err)
		}
		w.mu.Lock()
		w.bands[band.String()]++
		w.mu.Unlock()
		w.logger.Info("assessment",
			"assessment_id", p.AssessmentID,
			"band", band.String(),
			"pd", p.PD,
			"el", p.EL,
			"estimator", p.Estimator,
		)
	case event.EventTypeHighRiskDetected:
		var p event.HighRiskDetected
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
		w.mu.Lock()
		w.highRisk++
		w.mu.Unlock()
		w.logger.Warn("high risk applicant", "assessment_id", p.AssessmentID, "el", p.EL)
	default:
		w.mu.Lock()
		w.unknown++
		w.mu.Unlock()
		w.logger.Debug("ignoring event", "event_type", env.EventType, "offset", msg.Offset)
	}
	return nil
}

// summary is a snapshot of the watcher's tallies.
type summary struct {
	Bands    map[string]int
	HighRisk int
	Unknown  int
}

// Summary returns the per-band assessment counts, the high-risk alert count
// and the number of ignored event types.
func (w *watcher) Summary() summary {
	w.mu.Lock()
	defer w.mu.Unlock()

	return summary{
		Bands:    maps.Clone(w.bands),
		HighRisk: w.highRisk,
		Unknown:  w.unknown,
	}
}
