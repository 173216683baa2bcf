package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/pkg/money"
)

// EvaluateRiskRequest is the input DTO for the EvaluateRisk use case. Money
// fields accept JSON numbers or decimal strings.
type EvaluateRiskRequest struct {
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	CurrentDebt          decimal.Decimal `json:"current_debt"`
	NetWorth             decimal.Decimal `json:"net_worth"`
	AvailableSavings     decimal.Decimal `json:"available_savings"`
	AdditionalIncome     decimal.Decimal `json:"additional_income"`
	MortgagePayment      decimal.Decimal `json:"mortgage_payment"`
	RentPayment          decimal.Decimal `json:"rent_payment"`
	CreditLimit          decimal.Decimal `json:"credit_limit"`
	RequestedAmount      decimal.Decimal `json:"requested_amount"`
	MaritalStatus        string          `json:"marital_status"`
	CreditType           string          `json:"credit_type"`
	Age                  int             `json:"age"`
	EmploymentYears      int             `json:"employment_years"`
	CreditAccounts       int             `json:"credit_accounts"`
	DelinquentAccounts   int             `json:"delinquent_accounts"`
	CreditHistoryYears   int             `json:"credit_history_years"`
	LatePaymentsLastYear int             `json:"late_payments_last_year"`
	Bankruptcies         int             `json:"bankruptcies"`
	CreditInquiries      int             `json:"credit_inquiries"`
	UtilizationPct       int             `json:"utilization_pct"`
	CreditCards          int             `json:"credit_cards"`
	TermMonths           int             `json:"term_months"`
}

// ToProfile builds the validated ApplicantProfile. Enum parse failures and
// range violations are reported together as FieldErrors.
func (r EvaluateRiskRequest) ToProfile() (model.ApplicantProfile, error) {
	var parseErrs []error
	rejected := make(map[string]bool)

	marital, err := valueobject.NewMaritalStatus(r.MaritalStatus)
	if err != nil {
		rejected["marital_status"] = true
		parseErrs = append(parseErrs, &model.FieldError{
			Field: "marital_status", Value: r.MaritalStatus, Reason: err.Error(), Kind: model.ErrInputOutOfRange,
		})
	}
	creditType, err := valueobject.NewCreditType(r.CreditType)
	if err != nil {
		rejected["credit_type"] = true
		parseErrs = append(parseErrs, &model.FieldError{
			Field: "credit_type", Value: r.CreditType, Reason: err.Error(), Kind: model.ErrInputOutOfRange,
		})
	}

	profile, err := model.NewApplicantProfile(
		model.Demographics{
			Age:           r.Age,
			MaritalStatus: marital,
		},
		model.Financials{
			MonthlyIncome:    r.MonthlyIncome,
			MonthlyExpenses:  r.MonthlyExpenses,
			CurrentDebt:      r.CurrentDebt,
			NetWorth:         r.NetWorth,
			AvailableSavings: r.AvailableSavings,
			AdditionalIncome: r.AdditionalIncome,
			MortgagePayment:  r.MortgagePayment,
			RentPayment:      r.RentPayment,
			EmploymentYears:  r.EmploymentYears,
		},
		model.CreditHistory{
			CreditAccounts:       r.CreditAccounts,
			DelinquentAccounts:   r.DelinquentAccounts,
			HistoryYears:         r.CreditHistoryYears,
			LatePaymentsLastYear: r.LatePaymentsLastYear,
			Bankruptcies:         r.Bankruptcies,
			CreditInquiries:      r.CreditInquiries,
		},
		model.RequestedCredit{
			CreditLimit:     r.CreditLimit,
			RequestedAmount: r.RequestedAmount,
			CreditType:      creditType,
			UtilizationPct:  r.UtilizationPct,
			CreditCards:     r.CreditCards,
			TermMonths:      r.TermMonths,
		},
	)
	if err == nil && len(parseErrs) == 0 {
		return profile, nil
	}

	// The zero enum values also fail "is required"; keep only the parse error.
	for _, fe := range model.FieldErrors(err) {
		if !rejected[fe.Field] {
			parseErrs = append(parseErrs, fe)
		}
	}
	return model.ApplicantProfile{}, errors.Join(parseErrs...)
}

// EvaluateRiskResponse is the output DTO of a completed evaluation.
type EvaluateRiskResponse struct {
	AssessedAt   time.Time      `json:"assessed_at"`
	Charts       ChartsResponse `json:"charts"`
	RiskBand     string         `json:"risk_band"`
	PDPercent    string         `json:"pd_percent"`
	LGDPercent   string         `json:"lgd_percent"`
	EADDisplay   string         `json:"ead_display"`
	ELDisplay    string         `json:"el_display"`
	Estimator    string         `json:"estimator"`
	PD           float64        `json:"pd"`
	LGD          float64        `json:"lgd"`
	EAD          float64        `json:"ead"`
	EL           float64        `json:"el"`
	AssessmentID uuid.UUID      `json:"assessment_id"`
}

// ChartsResponse echoes the inputs of the four result charts.
type ChartsResponse struct {
	FinancialSplit   FinancialSplit   `json:"financial_split"`
	Indicators       Indicators       `json:"indicators"`
	DebtVsNetWorth   DebtVsNetWorth   `json:"debt_vs_net_worth"`
	UtilizationSplit UtilizationSplit `json:"utilization_split"`
}

// FinancialSplit is the income / expenses / debt pie.
type FinancialSplit struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Debt     decimal.Decimal `json:"debt"`
}

// UtilizationSplit is the used / available credit pie; the parts sum to 100.
type UtilizationSplit struct {
	Used      int `json:"used"`
	Available int `json:"available"`
}

// Indicators is the key financial indicators bar chart.
type Indicators struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Debt        decimal.Decimal `json:"debt"`
	Savings     decimal.Decimal `json:"savings"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// DebtVsNetWorth is the debt against net worth bar chart.
type DebtVsNetWorth struct {
	Debt     decimal.Decimal `json:"debt"`
	NetWorth decimal.Decimal `json:"net_worth"`
}

// FromModel maps an assessment to the response DTO, formatting the monetary
// scores in the given currency.
func FromModel(a *model.RiskAssessment, currency money.Currency) EvaluateRiskResponse {
	s := a.Scores()
	c := a.Charts()
	return EvaluateRiskResponse{
		AssessmentID: a.ID(),
		PD:           s.PD,
		LGD:          s.LGD,
		EAD:          s.EAD,
		EL:           s.EL,
		RiskBand:     s.Band.String(),
		PDPercent:    Percent(s.PD),
		LGDPercent:   Percent(s.LGD),
		EADDisplay:   money.FromFloat(s.EAD, currency).Display(),
		ELDisplay:    money.FromFloat(s.EL, currency).Display(),
		Estimator:    a.Estimator(),
		AssessedAt:   a.AssessedAt(),
		Charts: ChartsResponse{
			FinancialSplit: FinancialSplit{
				Income:   c.MonthlyIncome,
				Expenses: c.MonthlyExpenses,
				Debt:     c.CurrentDebt,
			},
			UtilizationSplit: UtilizationSplit{
				Used:      c.UtilizationUsed,
				Available: c.UtilizationAvailable,
			},
			Indicators: Indicators{
				Income:      c.MonthlyIncome,
				Expenses:    c.MonthlyExpenses,
				Debt:        c.CurrentDebt,
				Savings:     c.AvailableSavings,
				CreditLimit: c.CreditLimit,
			},
			DebtVsNetWorth: DebtVsNetWorth{
				Debt:     c.CurrentDebt,
				NetWorth: c.NetWorth,
			},
		},
	}
}

// Percent renders a fraction with two decimals, e.g. 0.41427 -> "41.43%".
func Percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FieldViolation is one rejected input field in an error response.
type FieldViolation struct {
	Value  any    `json:"value,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

// ErrorResponse is the body returned for a failed evaluation.
type ErrorResponse struct {
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations,omitempty"`
}

// NewErrorResponse maps an evaluation error to its wire form.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Code:    model.ErrorCode(err),
		Message: err.Error(),
	}
	for _, fe := range model.FieldErrors(err) {
		resp.Violations = append(resp.Violations, FieldViolation{
			Field:  fe.Field,
			Value:  fe.Value,
			Reason: fe.Reason,
			Code:   model.ErrorCode(fe),
		})
	}
	return resp
}
