package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aharo8014/Credit/internal/application/dto"
	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/port"
	"github.com/aharo8014/Credit/internal/domain/service"
	"github.com/aharo8014/Credit/pkg/money"
)

const tracerName = "github.com/aharo8014/Credit/internal/application/usecase"

// EvaluateRisk is the use case for scoring one credit applicant.
type EvaluateRisk struct {
	engine     *service.RiskEngine
	normalizer *service.Normalizer
	publisher  port.EventPublisher
	recorder   port.AssessmentRecorder
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
	currency   money.Currency
}

// NewEvaluateRisk creates a new EvaluateRisk use case.
func NewEvaluateRisk(
	engine *service.RiskEngine,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	currency money.Currency,
	logger *slog.Logger,
) *EvaluateRisk {
	return &EvaluateRisk{
		engine:     engine,
		normalizer: service.NewNormalizer(),
		publisher:  publisher,
		recorder:   recorder,
		currency:   currency,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
	}
}

// WithClock overrides the assessment timestamp source.
func (uc *EvaluateRisk) WithClock(now func() time.Time) *EvaluateRisk {
	uc.now = now
	return uc
}

// WithTracer overrides the tracer spans are started from.
func (uc *EvaluateRisk) WithTracer(tracer trace.Tracer) *EvaluateRisk {
	uc.tracer = tracer
	return uc
}

// Execute validates the request, runs the engine, and publishes the
// assessment events. The returned error keeps its taxonomy sentinel.
// Publishing is best effort and never turns a scored applicant into an error.
func (uc *EvaluateRisk) Execute(ctx context.Context, req dto.EvaluateRiskRequest) (dto.EvaluateRiskResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "EvaluateRisk")
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		code := model.ErrorCode(err)
		uc.recorder.RecordFailure(ctx, code)
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		return dto.EvaluateRiskResponse{}, err
	}

	span.SetAttributes(
		attribute.String("credit_risk.band", resp.RiskBand),
		attribute.String("credit_risk.estimator", resp.Estimator),
		attribute.Float64("credit_risk.el", resp.EL),
	)
	return resp, nil
}

func (uc *EvaluateRisk) execute(ctx context.Context, req dto.EvaluateRiskRequest) (dto.EvaluateRiskResponse, error) {
	// 1. Build the immutable profile.
	profile, err := req.ToProfile()
	if err != nil {
		return dto.EvaluateRiskResponse{}, fmt.Errorf("invalid applicant profile: %w", err)
	}

	trace.SpanFromContext(ctx).SetAttributes(featureAttributes(uc.normalizer.Normalize(profile))...)

	// 2. Score it.
	scores, err := uc.engine.Evaluate(profile)
	if err != nil {
		return dto.EvaluateRiskResponse{}, fmt.Errorf("failed to evaluate risk: %w", err)
	}

	// 3. Wrap the scores in the assessment aggregate.
	estimator := uc.engine.EstimatorName()
	assessment, err := model.NewRiskAssessment(profile, scores, estimator, uc.now())
	if err != nil {
		return dto.EvaluateRiskResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}
	uc.recorder.RecordAssessment(ctx, scores, estimator)

	// 4. Publish domain events. A publish failure is logged, not returned.
	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.ErrorContext(ctx, "failed to publish assessment events",
				"assessment_id", assessment.ID(),
				"events", len(evts),
				"error", err,
			)
			trace.SpanFromContext(ctx).RecordError(err)
		}
	}

	uc.logger.InfoContext(ctx, "credit risk evaluated",
		"assessment_id", assessment.ID(),
		"risk_band", scores.Band.String(),
		"estimator", estimator,
		"pd", scores.PD,
		"el", scores.EL,
	)

	return dto.FromModel(assessment, uc.currency), nil
}

func featureAttributes(v service.FeatureVector) []attribute.KeyValue {
	names := v.Names()
	attrs := make([]attribute.KeyValue, 0, len(names))
	for i, name := range names {
		attrs = append(attrs, attribute.Float64("credit_risk.feature."+name, v[i]))
	}
	return attrs
}
