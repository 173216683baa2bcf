package service_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
)

type profileInput struct {
	demographics model.Demographics
	financials   model.Financials
	history      model.CreditHistory
	requested    model.RequestedCredit
}

// exampleInput is the worked example: pd ~ 0.4143, lgd 0.80, ead 4000.
func exampleInput() profileInput {
	return profileInput{
		demographics: model.Demographics{Age: 30, MaritalStatus: valueobject.MaritalStatusSingle},
		financials: model.Financials{
			MonthlyIncome:    decimal.NewFromInt(2000),
			MonthlyExpenses:  decimal.NewFromInt(1200),
			CurrentDebt:      decimal.NewFromInt(10000),
			NetWorth:         decimal.NewFromInt(5000),
			AvailableSavings: decimal.NewFromInt(1000),
			EmploymentYears:  3,
		},
		history: model.CreditHistory{
			CreditAccounts:       5,
			DelinquentAccounts:   1,
			HistoryYears:         5,
			LatePaymentsLastYear: 1,
			CreditInquiries:      2,
		},
		requested: model.RequestedCredit{
			CreditLimit:     decimal.NewFromInt(15000),
			RequestedAmount: decimal.NewFromInt(10000),
			CreditType:      valueobject.CreditTypeConsumer,
			UtilizationPct:  40,
			CreditCards:     2,
			TermMonths:      36,
		},
	}
}

func buildProfile(t *testing.T, mods ...func(*profileInput)) model.ApplicantProfile {
	t.Helper()
	in := exampleInput()
	for _, m := range mods {
		m(&in)
	}
	p, err := model.NewApplicantProfile(in.demographics, in.financials, in.history, in.requested)
	require.NoError(t, err)
	return p
}

// randomProfile draws a profile uniformly inside every validated bound.
func randomProfile(t *testing.T, r *rand.Rand) model.ApplicantProfile {
	t.Helper()
	money := func(max int64) decimal.Decimal { return decimal.NewFromInt(r.Int64N(max + 1)) }
	accounts := r.IntN(30)
	return buildProfile(t, func(in *profileInput) {
		in.demographics.Age = model.MinAge + r.IntN(model.MaxAge-model.MinAge+1)
		in.financials = model.Financials{
			MonthlyIncome:    money(50_000),
			MonthlyExpenses:  money(50_000),
			CurrentDebt:      money(500_000),
			NetWorth:         money(1_000_000),
			AvailableSavings: money(200_000),
			EmploymentYears:  r.IntN(model.MaxEmploymentYears + 1),
		}
		// Keep the default zero-income policy out of the way.
		if in.financials.MonthlyIncome.IsZero() {
			in.financials.MonthlyIncome = decimal.NewFromInt(1)
		}
		in.history = model.CreditHistory{
			CreditAccounts:       accounts,
			DelinquentAccounts:   r.IntN(accounts + 1),
			HistoryYears:         r.IntN(model.MaxCreditHistory + 1),
			LatePaymentsLastYear: r.IntN(model.MaxLatePaymentsYear + 1),
			Bankruptcies:         r.IntN(5),
			CreditInquiries:      r.IntN(20),
		}
		in.requested.RequestedAmount = money(1_000_000)
		in.requested.UtilizationPct = r.IntN(model.MaxUtilizationPct + 1)
	})
}
