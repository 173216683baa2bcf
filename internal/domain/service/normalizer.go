package service

import (
	"github.com/aharo8014/Credit/internal/domain/model"
)

// FeatureCount is the length of the normalized feature vector.
const FeatureCount = 10

// Income scales. The reference formula divides monthly income by 10,000; the
// learned estimators are trained on features that divide by 100,000.
const (
	ReferenceIncomeScale = 10_000.0
	MLIncomeScale        = 100_000.0
)

var featureNames = [FeatureCount]string{
	"age",
	"monthly_income",
	"credit_accounts",
	"delinquent_accounts",
	"utilization",
	"current_debt",
	"credit_history_years",
	"late_payments_last_year",
	"bankruptcies",
	"credit_inquiries",
}

// FeatureVector holds the ten normalized applicant features in a fixed order.
// Every feature is roughly in [0,1] except bankruptcies, which is a raw count.
type FeatureVector [FeatureCount]float64

// Names returns the feature names in vector order.
func (FeatureVector) Names() [FeatureCount]string { return featureNames }

// Slice returns the features as a newly allocated slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Normalizer scales raw applicant fields into the ranges the estimators expect.
type Normalizer struct {
	incomeScale float64
}

// NewNormalizer returns the normalizer used by the reference logistic formula.
func NewNormalizer() *Normalizer {
	return &Normalizer{incomeScale: ReferenceIncomeScale}
}

// NewMLNormalizer returns the normalizer used to feed learned models.
func NewMLNormalizer() *Normalizer {
	return &Normalizer{incomeScale: MLIncomeScale}
}

// Normalize computes the feature vector for a profile.
func (n *Normalizer) Normalize(p model.ApplicantProfile) FeatureVector {
	d := p.Demographics()
	f := p.Financials()
	h := p.CreditHistory()
	r := p.RequestedCredit()

	return FeatureVector{
		float64(d.Age) / 100,
		f.MonthlyIncome.InexactFloat64() / n.incomeScale,
		float64(h.CreditAccounts) / 10,
		float64(h.DelinquentAccounts) / 5,
		float64(r.UtilizationPct) / 100,
		f.CurrentDebt.InexactFloat64() / 50_000,
		float64(h.HistoryYears) / 50,
		float64(h.LatePaymentsLastYear) / 12,
		float64(h.Bankruptcies),
		float64(h.CreditInquiries) / 10,
	}
}
