package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/port"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
)

// LGDEstimator maps an applicant profile to a loss given default, a non-negative
// fraction of exposure lost if the borrower defaults.
type LGDEstimator interface {
	EstimateLGD(profile model.ApplicantProfile) (float64, error)
}

// Closed-form LGD constants.
const (
	BaseLGD               = 0.45
	DebtToNetWorthWeight  = 0.2
	SavingsToIncomeWeight = 0.1
	// NoNetWorthLGD is used when the applicant declares no net worth.
	NoNetWorthLGD = 0.85
)

// lgdRatios holds the two balance-sheet ratios both LGD strategies start from.
type lgdRatios struct {
	debtToNetWorth  float64
	savingsToIncome float64
}

// computeRatios returns ok=false when net worth is zero, in which case the
// caller must use NoNetWorthLGD.
func computeRatios(p model.ApplicantProfile, policy valueobject.ZeroIncomePolicy) (lgdRatios, bool, error) {
	f := p.Financials()
	if !f.NetWorth.IsPositive() {
		return lgdRatios{}, false, nil
	}

	r := lgdRatios{
		debtToNetWorth: f.CurrentDebt.InexactFloat64() / f.NetWorth.InexactFloat64(),
	}
	if !isFinite(r.debtToNetWorth) {
		return lgdRatios{}, false, ratioOverflow("net_worth", f.NetWorth, "debt to net worth")
	}

	if f.MonthlyIncome.IsZero() {
		if !policy.Equal(valueobject.ZeroIncomeIgnoreSavings) {
			return lgdRatios{}, false, &model.FieldError{
				Field:  "monthly_income",
				Value:  f.MonthlyIncome.String(),
				Reason: "savings to income ratio is undefined for zero income with positive net worth",
				Kind:   model.ErrDivisionByZeroInLGD,
			}
		}
		return r, true, nil
	}

	r.savingsToIncome = f.AvailableSavings.InexactFloat64() / f.MonthlyIncome.InexactFloat64()
	if !isFinite(r.savingsToIncome) {
		return lgdRatios{}, false, ratioOverflow("monthly_income", f.MonthlyIncome, "savings to income")
	}
	return r, true, nil
}

func ratioOverflow(field string, value decimal.Decimal, ratio string) error {
	return &model.FieldError{
		Field:  field,
		Value:  value.String(),
		Reason: ratio + " ratio overflows",
		Kind:   model.ErrInputOutOfRange,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ClosedFormLGDEstimator computes
//
//	lgd = max(0, 0.45 + 0.2*debt/netWorth - 0.1*savings/income)
//
// for positive net worth, and 0.85 when net worth is zero.
type ClosedFormLGDEstimator struct {
	policy valueobject.ZeroIncomePolicy
}

// NewClosedFormLGDEstimator returns the reference LGD estimator. The policy
// governs zero-income applicants; the zero value behaves as ZeroIncomeReject.
func NewClosedFormLGDEstimator(policy valueobject.ZeroIncomePolicy) *ClosedFormLGDEstimator {
	return &ClosedFormLGDEstimator{policy: policy}
}

// Name identifies the strategy in logs, metrics and events.
func (e *ClosedFormLGDEstimator) Name() string { return "closed_form" }

// EstimateLGD implements LGDEstimator.
func (e *ClosedFormLGDEstimator) EstimateLGD(profile model.ApplicantProfile) (float64, error) {
	r, ok, err := computeRatios(profile, e.policy)
	if err != nil {
		return 0, err
	}
	if !ok {
		return NoNetWorthLGD, nil
	}

	lgd := BaseLGD + DebtToNetWorthWeight*r.debtToNetWorth - SavingsToIncomeWeight*r.savingsToIncome
	return math.Max(0, lgd), nil
}

// LearnedLGDEstimator delegates LGD to a trained regression model fed
// [debt/netWorth, savings/income, income/100000, utilization/100]. It keeps
// the zero net worth fallback and the zero-income policy of the closed form.
type LearnedLGDEstimator struct {
	model  port.RegressionModel
	policy valueobject.ZeroIncomePolicy
}

// NewLearnedLGDEstimator wraps a regressor. A nil or untrained regressor is
// reported as ErrEstimatorUnavailable on use.
func NewLearnedLGDEstimator(m port.RegressionModel, policy valueobject.ZeroIncomePolicy) *LearnedLGDEstimator {
	return &LearnedLGDEstimator{model: m, policy: policy}
}

// Name identifies the strategy in logs, metrics and events.
func (e *LearnedLGDEstimator) Name() string { return "learned" }

// EstimateLGD implements LGDEstimator.
func (e *LearnedLGDEstimator) EstimateLGD(profile model.ApplicantProfile) (float64, error) {
	if e.model == nil || !e.model.Trained() {
		return 0, fmt.Errorf("LGD regressor not initialized: %w", model.ErrEstimatorUnavailable)
	}

	r, ok, err := computeRatios(profile, e.policy)
	if err != nil {
		return 0, err
	}
	if !ok {
		return NoNetWorthLGD, nil
	}

	features := LGDFeatures(profile, r.debtToNetWorth, r.savingsToIncome)
	lgd, err := e.model.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("LGD regressor prediction failed: %v: %w", err, model.ErrEstimatorUnavailable)
	}
	if !isFinite(lgd) {
		return 0, fmt.Errorf("LGD regressor returned %v: %w", lgd, model.ErrEstimatorUnavailable)
	}

	return math.Max(0, lgd), nil
}

// LGDFeatureCount is the width of the learned LGD feature vector.
const LGDFeatureCount = 4

// LGDFeatures builds the learned LGD feature vector from precomputed ratios.
func LGDFeatures(profile model.ApplicantProfile, debtToNetWorth, savingsToIncome float64) []float64 {
	f := profile.Financials()
	r := profile.RequestedCredit()
	return []float64{
		debtToNetWorth,
		savingsToIncome,
		f.MonthlyIncome.InexactFloat64() / MLIncomeScale,
		float64(r.UtilizationPct) / 100,
	}
}
