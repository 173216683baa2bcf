package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/aharo8014/Credit/internal/domain/model"
)

// Instrument names as exposed on /metrics.
const (
	evaluationsTotal = "credit_risk_evaluations"
	errorsTotal      = "credit_risk_evaluation_errors"
	expectedLoss     = "credit_risk_expected_loss"
)

// Recorder implements port.AssessmentRecorder with OpenTelemetry instruments.
type Recorder struct {
	evaluations otelmetric.Int64Counter
	failures    otelmetric.Int64Counter
	loss        otelmetric.Float64Histogram
}

// NewRecorder creates the instruments on the given meter.
func NewRecorder(meter otelmetric.Meter) (*Recorder, error) {
	evaluations, err := meter.Int64Counter(evaluationsTotal,
		otelmetric.WithDescription("Completed credit risk evaluations by band and estimator"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", evaluationsTotal, err)
	}

	failures, err := meter.Int64Counter(errorsTotal,
		otelmetric.WithDescription("Rejected or failed credit risk evaluations by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", errorsTotal, err)
	}

	loss, err := meter.Float64Histogram(expectedLoss,
		otelmetric.WithDescription("Expected loss per evaluation"),
		otelmetric.WithExplicitBucketBoundaries(0, 100, 250, 500, 1000, 2500, 5000, 10000, 50000, 100000),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", expectedLoss, err)
	}

	return &Recorder{evaluations: evaluations, failures: failures, loss: loss}, nil
}

// RecordAssessment counts a completed evaluation and observes its expected loss.
func (r *Recorder) RecordAssessment(ctx context.Context, scores model.RiskScores, estimator string) {
	attrs := otelmetric.WithAttributes(
		attribute.String("band", scores.Band.String()),
		attribute.String("estimator", estimator),
	)
	r.evaluations.Add(ctx, 1, attrs)
	r.loss.Record(ctx, scores.EL, attrs)
}

// RecordFailure counts an evaluation that ended with the given error code.
func (r *Recorder) RecordFailure(ctx context.Context, code string) {
	r.failures.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("kind", code)))
}
