package service

import (
	"fmt"

	"github.com/aharo8014/Credit/internal/domain/model"
)

// named is implemented by estimators that report a strategy name.
type named interface {
	Name() string
}

// RiskEngine runs the scoring pipeline for one applicant. It holds no mutable
// state and is safe for concurrent use.
type RiskEngine struct {
	pd  PDEstimator
	lgd LGDEstimator
}

// NewRiskEngine creates a RiskEngine from a PD and an LGD strategy.
func NewRiskEngine(pd PDEstimator, lgd LGDEstimator) *RiskEngine {
	return &RiskEngine{pd: pd, lgd: lgd}
}

// Evaluate computes PD, LGD, EAD, EL and the risk band. Estimator errors are
// wrapped with the failing stage and keep their sentinel identity. A score
// that overflows to NaN or Inf is reported as ErrInputOutOfRange.
func (e *RiskEngine) Evaluate(profile model.ApplicantProfile) (model.RiskScores, error) {
	if profile.IsZero() {
		return model.RiskScores{}, fmt.Errorf("evaluate: %w", model.ErrInputOutOfRange)
	}

	pd, err := e.pd.EstimatePD(profile)
	if err != nil {
		return model.RiskScores{}, fmt.Errorf("estimate PD: %w", err)
	}

	lgd, err := e.lgd.EstimateLGD(profile)
	if err != nil {
		return model.RiskScores{}, fmt.Errorf("estimate LGD: %w", err)
	}

	ead := CalculateEAD(profile)
	el := AggregateExpectedLoss(pd, lgd, ead)

	for _, s := range []struct {
		name  string
		value float64
	}{{"pd", pd}, {"lgd", lgd}, {"ead", ead}, {"el", el}} {
		if !isFinite(s.value) {
			return model.RiskScores{}, fmt.Errorf("%s is not finite (%v): %w", s.name, s.value, model.ErrInputOutOfRange)
		}
	}

	return model.RiskScores{
		PD:   pd,
		LGD:  lgd,
		EAD:  ead,
		EL:   el,
		Band: ClassifyRisk(el),
	}, nil
}

// EstimatorName describes the configured strategies, e.g.
// "pd=closed_form,lgd=closed_form".
func (e *RiskEngine) EstimatorName() string {
	return fmt.Sprintf("pd=%s,lgd=%s", strategyName(e.pd), strategyName(e.lgd))
}

func strategyName(v any) string {
	if n, ok := v.(named); ok {
		return n.Name()
	}
	return "custom"
}
