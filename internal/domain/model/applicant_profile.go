package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aharo8014/Credit/internal/domain/valueobject"
)

// Input bounds accepted by NewApplicantProfile.
const (
	MinAge              = 18
	MaxAge              = 99
	MaxEmploymentYears  = 50
	MaxCreditHistory    = 50
	MaxLatePaymentsYear = 12
	MaxUtilizationPct   = 100
	MinTermMonths       = 6
	MaxTermMonths       = 360
)

// MaxAmount is the largest money amount NewApplicantProfile accepts. Larger
// values do not survive conversion to float64 in the scoring pipeline.
var MaxAmount = decimal.New(1, 15)

// Demographics groups the personal attributes of an applicant.
type Demographics struct {
	Age           int
	MaritalStatus valueobject.MaritalStatus
}

// Financials groups the monthly cash-flow and balance-sheet attributes.
type Financials struct {
	MonthlyIncome    decimal.Decimal
	MonthlyExpenses  decimal.Decimal
	CurrentDebt      decimal.Decimal
	NetWorth         decimal.Decimal
	AvailableSavings decimal.Decimal
	AdditionalIncome decimal.Decimal
	MortgagePayment  decimal.Decimal
	RentPayment      decimal.Decimal
	EmploymentYears  int
}

// CreditHistory groups the bureau-style history attributes.
type CreditHistory struct {
	CreditAccounts       int
	DelinquentAccounts   int
	HistoryYears         int
	LatePaymentsLastYear int
	Bankruptcies         int
	CreditInquiries      int
}

// RequestedCredit groups the attributes of the credit being applied for.
type RequestedCredit struct {
	CreditLimit     decimal.Decimal
	RequestedAmount decimal.Decimal
	CreditType      valueobject.CreditType
	UtilizationPct  int
	CreditCards     int
	TermMonths      int
}

// ApplicantProfile is the immutable input of one risk evaluation. It can only be
// obtained from NewApplicantProfile, so holding one means every bound has been checked.
type ApplicantProfile struct {
	demographics Demographics
	financials   Financials
	history      CreditHistory
	requested    RequestedCredit
}

// NewApplicantProfile validates the four attribute groups and returns the profile.
// All violations are reported together; each is a *FieldError wrapping
// ErrInputOutOfRange or ErrInvalidRelationalConstraint.
func NewApplicantProfile(
	demographics Demographics,
	financials Financials,
	history CreditHistory,
	requested RequestedCredit,
) (ApplicantProfile, error) {
	v := &validator{}

	v.intRange("age", demographics.Age, MinAge, MaxAge)
	if demographics.MaritalStatus.IsZero() {
		v.fail("marital_status", "", "is required", ErrInputOutOfRange)
	}

	v.nonNegative("monthly_income", financials.MonthlyIncome)
	v.nonNegative("monthly_expenses", financials.MonthlyExpenses)
	v.nonNegative("current_debt", financials.CurrentDebt)
	v.nonNegative("net_worth", financials.NetWorth)
	v.nonNegative("available_savings", financials.AvailableSavings)
	v.nonNegative("additional_income", financials.AdditionalIncome)
	v.nonNegative("mortgage_payment", financials.MortgagePayment)
	v.nonNegative("rent_payment", financials.RentPayment)
	v.intRange("employment_years", financials.EmploymentYears, 0, MaxEmploymentYears)

	v.intMin("credit_accounts", history.CreditAccounts, 0)
	v.intMin("delinquent_accounts", history.DelinquentAccounts, 0)
	v.intRange("credit_history_years", history.HistoryYears, 0, MaxCreditHistory)
	v.intRange("late_payments_last_year", history.LatePaymentsLastYear, 0, MaxLatePaymentsYear)
	v.intMin("bankruptcies", history.Bankruptcies, 0)
	v.intMin("credit_inquiries", history.CreditInquiries, 0)
	if history.DelinquentAccounts > history.CreditAccounts && history.CreditAccounts >= 0 {
		v.fail("delinquent_accounts", history.DelinquentAccounts,
			fmt.Sprintf("must not exceed credit_accounts (%d)", history.CreditAccounts),
			ErrInvalidRelationalConstraint)
	}

	v.nonNegative("credit_limit", requested.CreditLimit)
	v.intRange("utilization_pct", requested.UtilizationPct, 0, MaxUtilizationPct)
	v.intMin("credit_cards", requested.CreditCards, 0)
	if requested.CreditType.IsZero() {
		v.fail("credit_type", "", "is required", ErrInputOutOfRange)
	}
	v.nonNegative("requested_amount", requested.RequestedAmount)
	v.intRange("term_months", requested.TermMonths, MinTermMonths, MaxTermMonths)

	if err := v.err(); err != nil {
		return ApplicantProfile{}, err
	}

	return ApplicantProfile{
		demographics: demographics,
		financials:   financials,
		history:      history,
		requested:    requested,
	}, nil
}

// --- Accessors (return copies) ---

func (p ApplicantProfile) Demographics() Demographics       { return p.demographics }
func (p ApplicantProfile) Financials() Financials           { return p.financials }
func (p ApplicantProfile) CreditHistory() CreditHistory     { return p.history }
func (p ApplicantProfile) RequestedCredit() RequestedCredit { return p.requested }

// IsZero reports whether the profile was never constructed.
func (p ApplicantProfile) IsZero() bool {
	return p.demographics.Age == 0 && p.demographics.MaritalStatus.IsZero()
}

// validator accumulates field violations.
type validator struct {
	errs []error
}

func (v *validator) fail(field string, value any, reason string, kind error) {
	v.errs = append(v.errs, &FieldError{Field: field, Value: value, Reason: reason, Kind: kind})
}

func (v *validator) intRange(field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.fail(field, value, fmt.Sprintf("must be between %d and %d", lo, hi), ErrInputOutOfRange)
	}
}

func (v *validator) intMin(field string, value, lo int) {
	if value < lo {
		v.fail(field, value, fmt.Sprintf("must be at least %d", lo), ErrInputOutOfRange)
	}
}

func (v *validator) nonNegative(field string, value decimal.Decimal) {
	switch {
	case value.IsNegative():
		v.fail(field, value.String(), "must not be negative", ErrInputOutOfRange)
	case value.GreaterThan(MaxAmount):
		v.fail(field, value.String(), "must not exceed "+MaxAmount.String(), ErrInputOutOfRange)
	}
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}
