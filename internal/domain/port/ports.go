package port

import (
	"context"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/pkg/events"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// ProbabilityModel is a trained binary classifier returning the probability of
// the positive (default) class for a feature vector.
type ProbabilityModel interface {
	PredictProbability(features []float64) (float64, error)
	Trained() bool
}

// RegressionModel is a trained regressor returning a scalar for a feature vector.
type RegressionModel interface {
	Predict(features []float64) (float64, error)
	Trained() bool
}

// AssessmentRecorder receives the outcome of each evaluation for telemetry.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, scores model.RiskScores, estimator string)
	RecordFailure(ctx context.Context, code string)
}
