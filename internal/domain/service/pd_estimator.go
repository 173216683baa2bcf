package service

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/port"
)

// PDEstimator maps an applicant profile to a probability of default in [0,1].
type PDEstimator interface {
	EstimatePD(profile model.ApplicantProfile) (float64, error)
}

// ReferenceCoefficients are the fixed weights of the closed-form PD model, in
// FeatureVector order. Negative weights (age, account count, debt scale,
// history length) lower PD; positive weights raise it.
var ReferenceCoefficients = FeatureVector{-2.5, 0.01, -0.5, 1.2, 0.8, -0.3, -0.7, 0.5, 1.1, 0.9}

// ReferenceIntercept is the intercept of the closed-form PD model.
const ReferenceIntercept = 0.0

// Sigmoid is the logistic transform 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// LogisticPDEstimator scores PD with a fixed-coefficient logistic model.
// Bankruptcies and inquiries are not clamped, so extreme counts saturate PD
// towards 0 or 1.
type LogisticPDEstimator struct {
	normalizer   *Normalizer
	coefficients FeatureVector
	intercept    float64
}

// NewLogisticPDEstimator returns the reference closed-form estimator.
func NewLogisticPDEstimator() *LogisticPDEstimator {
	return &LogisticPDEstimator{
		normalizer:   NewNormalizer(),
		coefficients: ReferenceCoefficients,
		intercept:    ReferenceIntercept,
	}
}

// Name identifies the strategy in logs, metrics and events.
func (e *LogisticPDEstimator) Name() string { return "closed_form" }

// Logit returns the linear score before the logistic transform.
func (e *LogisticPDEstimator) Logit(profile model.ApplicantProfile) float64 {
	features := e.normalizer.Normalize(profile)
	logit := e.intercept
	for i, c := range e.coefficients {
		logit += c * features[i]
	}
	return logit
}

// EstimatePD implements PDEstimator. It never fails.
func (e *LogisticPDEstimator) EstimatePD(profile model.ApplicantProfile) (float64, error) {
	return Sigmoid(e.Logit(profile)), nil
}

// LearnedPDEstimator delegates PD to a trained probability model fed the
// ML-scaled feature vector.
type LearnedPDEstimator struct {
	model      port.ProbabilityModel
	normalizer *Normalizer
}

// NewLearnedPDEstimator wraps a classifier. A nil or untrained classifier is
// accepted here and reported as ErrEstimatorUnavailable on use.
func NewLearnedPDEstimator(m port.ProbabilityModel) *LearnedPDEstimator {
	return &LearnedPDEstimator{
		model:      m,
		normalizer: NewMLNormalizer(),
	}
}

// Name identifies the strategy in logs, metrics and events.
func (e *LearnedPDEstimator) Name() string { return "learned" }

// EstimatePD implements PDEstimator.
func (e *LearnedPDEstimator) EstimatePD(profile model.ApplicantProfile) (float64, error) {
	if e.model == nil || !e.model.Trained() {
		return 0, fmt.Errorf("PD classifier not initialized: %w", model.ErrEstimatorUnavailable)
	}

	features := e.normalizer.Normalize(profile)
	pd, err := e.model.PredictProbability(features.Slice())
	if err != nil {
		return 0, fmt.Errorf("PD classifier prediction failed: %v: %w", err, model.ErrEstimatorUnavailable)
	}
	if math.IsNaN(pd) {
		return 0, fmt.Errorf("PD classifier returned NaN: %w", model.ErrEstimatorUnavailable)
	}

	return clampUnit(pd), nil
}

// BlendedPDEstimator mixes the closed-form and learned probabilities. If the
// learned estimator fails, it logs the failure and returns the closed-form PD.
type BlendedPDEstimator struct {
	closedForm    *LogisticPDEstimator
	learned       PDEstimator
	logger        *slog.Logger
	learnedWeight float64
}

// NewBlendedPDEstimator creates a BlendedPDEstimator with the given learned
// weight, clamped to [0,1]. A weight of 0.0 means closed-form only; 1.0 means
// learned only.
func NewBlendedPDEstimator(closedForm *LogisticPDEstimator, learned PDEstimator, learnedWeight float64, logger *slog.Logger) *BlendedPDEstimator {
	return &BlendedPDEstimator{
		closedForm:    closedForm,
		learned:       learned,
		learnedWeight: clampUnit(learnedWeight),
		logger:        logger,
	}
}

// Name identifies the strategy in logs, metrics and events.
func (e *BlendedPDEstimator) Name() string { return "blended" }

// EstimatePD implements PDEstimator.
func (e *BlendedPDEstimator) EstimatePD(profile model.ApplicantProfile) (float64, error) {
	closedPD, err := e.closedForm.EstimatePD(profile)
	if err != nil {
		return 0, err
	}

	learnedPD, err := e.learned.EstimatePD(profile)
	if err != nil {
		e.logger.Warn("learned PD estimate failed, using closed-form PD", "error", err)
		return closedPD, nil
	}

	return clampUnit((1-e.learnedWeight)*closedPD + e.learnedWeight*learnedPD), nil
}

func clampUnit(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
