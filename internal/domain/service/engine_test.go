package service_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/service"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
)

type fixedPD struct {
	err error
	pd  float64
}

func (f fixedPD) EstimatePD(model.ApplicantProfile) (float64, error) { return f.pd, f.err }

type fixedLGD struct {
	err error
	lgd float64
}

func (f fixedLGD) EstimateLGD(model.ApplicantProfile) (float64, error) { return f.lgd, f.err }

func referenceEngine() *service.RiskEngine {
	return service.NewRiskEngine(
		service.NewLogisticPDEstimator(),
		service.NewClosedFormLGDEstimator(valueobject.ZeroIncomeReject),
	)
}

func TestRiskEngine_Example(t *testing.T) {
	scores, err := referenceEngine().Evaluate(buildProfile(t))
	require.NoError(t, err)

	assert.InDelta(t, 0.414272, scores.PD, 1e-5)
	assert.InDelta(t, 0.80, scores.LGD, 1e-12)
	assert.Equal(t, 4000.0, scores.EAD)
	assert.Equal(t, scores.PD*scores.LGD*scores.EAD, scores.EL)
	assert.InDelta(t, 1325.67, scores.EL, 0.01)
	assert.True(t, scores.Band.Equal(valueobject.RiskBandModerate))
}

func TestRiskEngine_InvariantsForRandomProfiles(t *testing.T) {
	engine := referenceEngine()
	r := rand.New(rand.NewPCG(7, 11))

	for range 500 {
		p := randomProfile(t, r)
		scores, err := engine.Evaluate(p)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, scores.PD, 0.0)
		assert.LessOrEqual(t, scores.PD, 1.0)
		assert.GreaterOrEqual(t, scores.LGD, 0.0)
		assert.GreaterOrEqual(t, scores.EAD, 0.0)
		assert.Equal(t, scores.PD*scores.LGD*scores.EAD, scores.EL)
		assert.True(t, scores.Band.Equal(valueobject.RiskBandFromExpectedLoss(scores.EL)))
	}
}

func TestRiskEngine_Deterministic(t *testing.T) {
	engine := referenceEngine()
	p := buildProfile(t)

	first, err := engine.Evaluate(p)
	require.NoError(t, err)
	second, err := engine.Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRiskEngine_BandBoundaries(t *testing.T) {
	// With pd=1 and lgd=1 the EL equals the EAD, so the amount sets the band.
	tests := []struct {
		amount string
		want   valueobject.RiskBand
	}{
		{"499.99", valueobject.RiskBandLow},
		{"500", valueobject.RiskBandModerate},
		{"4999.99", valueobject.RiskBandModerate},
		{"5000", valueobject.RiskBandHigh},
	}
	engine := service.NewRiskEngine(fixedPD{pd: 1}, fixedLGD{lgd: 1})
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			p := buildProfile(t, func(in *profileInput) {
				in.requested.RequestedAmount = decimal.RequireFromString(tt.amount)
				in.requested.UtilizationPct = 100
			})
			scores, err := engine.Evaluate(p)
			require.NoError(t, err)
			assert.True(t, scores.Band.Equal(tt.want), "got %s", scores.Band)
		})
	}
}

func TestRiskEngine_ZeroUtilization(t *testing.T) {
	p := buildProfile(t, func(in *profileInput) { in.requested.UtilizationPct = 0 })

	scores, err := referenceEngine().Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores.EAD)
	assert.Equal(t, 0.0, scores.EL)
	assert.True(t, scores.Band.Equal(valueobject.RiskBandLow))
}

func TestRiskEngine_WrapsEstimatorErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := service.NewRiskEngine(fixedPD{err: boom}, fixedLGD{}).Evaluate(buildProfile(t))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "estimate PD")

	_, err = referenceEngine().Evaluate(buildProfile(t, func(in *profileInput) {
		in.financials.MonthlyIncome = decimal.Zero
	}))
	require.ErrorIs(t, err, model.ErrDivisionByZeroInLGD)
	assert.Contains(t, err.Error(), "estimate LGD")
}

func TestRiskEngine_RejectsNonFiniteScores(t *testing.T) {
	tests := []struct {
		name   string
		engine *service.RiskEngine
		want   string
	}{
		{
			name:   "infinite lgd",
			engine: service.NewRiskEngine(fixedPD{pd: 0.2}, fixedLGD{lgd: math.Inf(1)}),
			want:   "lgd is not finite",
		},
		{
			name:   "nan pd",
			engine: service.NewRiskEngine(fixedPD{pd: math.NaN()}, fixedLGD{lgd: 0.5}),
			want:   "pd is not finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := tt.engine.Evaluate(buildProfile(t))
			require.ErrorIs(t, err, model.ErrInputOutOfRange)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, scores.Band.IsZero())
		})
	}
}

func TestRiskEngine_RatioOverflowIsOutOfRange(t *testing.T) {
	_, err := referenceEngine().Evaluate(buildProfile(t, func(in *profileInput) {
		in.financials.CurrentDebt = model.MaxAmount
		in.financials.NetWorth = decimal.RequireFromString("1e-300")
	}))
	require.ErrorIs(t, err, model.ErrInputOutOfRange)

	fields := model.FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "net_worth", fields[0].Field)
}

func TestRiskEngine_RejectsZeroProfile(t *testing.T) {
	_, err := referenceEngine().Evaluate(model.ApplicantProfile{})
	assert.ErrorIs(t, err, model.ErrInputOutOfRange)
}

func TestRiskEngine_EstimatorName(t *testing.T) {
	assert.Equal(t, "pd=closed_form,lgd=closed_form", referenceEngine().EstimatorName())
	assert.Equal(t, "pd=custom,lgd=custom", service.NewRiskEngine(fixedPD{}, fixedLGD{}).EstimatorName())
}

func TestCalculateEAD(t *testing.T) {
	p := buildProfile(t, func(in *profileInput) {
		in.requested.RequestedAmount = decimal.NewFromInt(25_000)
		in.requested.UtilizationPct = 80
	})
	assert.Equal(t, 20_000.0, service.CalculateEAD(p))
}

func TestAggregateExpectedLoss(t *testing.T) {
	assert.Equal(t, 0.1*0.5*1000, service.AggregateExpectedLoss(0.1, 0.5, 1000))
	assert.Equal(t, 0.0, service.AggregateExpectedLoss(0.3, 0, 1000))
}
