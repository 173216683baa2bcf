package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aharo8014/Credit/internal/domain/event"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/pkg/events"
)

// RiskScores is the pure output of the risk engine for one applicant.
type RiskScores struct {
	Band valueobject.RiskBand
	PD   float64
	LGD  float64
	EAD  float64
	EL   float64
}

// ChartData echoes the raw inputs the presentation layer plots next to the scores.
type ChartData struct {
	// Income / expenses / debt pie.
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	CurrentDebt     decimal.Decimal
	// Utilization pie: used + available = 100.
	UtilizationUsed      int
	UtilizationAvailable int
	// Indicator bars (in addition to the three above).
	AvailableSavings decimal.Decimal
	CreditLimit      decimal.Decimal
	// Debt versus net worth bars.
	NetWorth decimal.Decimal
}

// ChartDataFromProfile extracts the chart echoes from a validated profile.
func ChartDataFromProfile(p ApplicantProfile) ChartData {
	f := p.Financials()
	r := p.RequestedCredit()
	return ChartData{
		MonthlyIncome:        f.MonthlyIncome,
		MonthlyExpenses:      f.MonthlyExpenses,
		CurrentDebt:          f.CurrentDebt,
		UtilizationUsed:      r.UtilizationPct,
		UtilizationAvailable: MaxUtilizationPct - r.UtilizationPct,
		AvailableSavings:     f.AvailableSavings,
		CreditLimit:          r.CreditLimit,
		NetWorth:             f.NetWorth,
	}
}

// RiskAssessment is the aggregate returned for one evaluation request. It lives
// only for the duration of the request and is never persisted.
type RiskAssessment struct {
	events.EventCollector
	assessedAt time.Time
	charts     ChartData
	estimator  string
	scores     RiskScores
	id         uuid.UUID
}

// NewRiskAssessment wraps engine scores into an assessment and records the
// RiskAssessed event (plus HighRiskDetected for the HIGH band).
func NewRiskAssessment(profile ApplicantProfile, scores RiskScores, estimator string, now time.Time) (*RiskAssessment, error) {
	if profile.IsZero() {
		return nil, fmt.Errorf("applicant profile is required")
	}
	if scores.Band.IsZero() {
		return nil, fmt.Errorf("risk band is required")
	}
	if math.IsNaN(scores.EL) || math.IsInf(scores.EL, 0) {
		return nil, fmt.Errorf("expected loss must be finite, got %v", scores.EL)
	}
	if estimator == "" {
		return nil, fmt.Errorf("estimator name is required")
	}

	a := &RiskAssessment{
		id:         uuid.New(),
		scores:     scores,
		charts:     ChartDataFromProfile(profile),
		estimator:  estimator,
		assessedAt: now.UTC(),
	}

	a.Record(event.NewRiskAssessed(
		a.id, a.estimator,
		scores.PD, scores.LGD, scores.EAD, scores.EL,
		scores.Band.String(), a.assessedAt,
	))
	if scores.Band.Equal(valueobject.RiskBandHigh) {
		a.Record(event.NewHighRiskDetected(a.id, scores.EL, a.assessedAt))
	}

	return a, nil
}

// --- Accessors ---

func (a *RiskAssessment) ID() uuid.UUID                  { return a.id }
func (a *RiskAssessment) Scores() RiskScores             { return a.scores }
func (a *RiskAssessment) RiskBand() valueobject.RiskBand { return a.scores.Band }
func (a *RiskAssessment) Charts() ChartData              { return a.charts }
func (a *RiskAssessment) Estimator() string              { return a.estimator }
func (a *RiskAssessment) AssessedAt() time.Time          { return a.assessedAt }
