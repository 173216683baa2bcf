package valueobject

import "fmt"

// ZeroIncomePolicy decides how the closed-form LGD treats an applicant with
// positive net worth and zero monthly income, where savings/income is undefined.
type ZeroIncomePolicy struct {
	value string
}

var (
	// ZeroIncomeReject fails the evaluation with ErrDivisionByZeroInLGD.
	ZeroIncomeReject = ZeroIncomePolicy{value: "reject"}
	// ZeroIncomeIgnoreSavings drops the savings term from the LGD formula.
	ZeroIncomeIgnoreSavings = ZeroIncomePolicy{value: "ignore_savings"}
)

// NewZeroIncomePolicy parses a policy name. An empty string selects ZeroIncomeReject.
func NewZeroIncomePolicy(s string) (ZeroIncomePolicy, error) {
	switch s {
	case "", "reject":
		return ZeroIncomeReject, nil
	case "ignore_savings":
		return ZeroIncomeIgnoreSavings, nil
	default:
		return ZeroIncomePolicy{}, fmt.Errorf("invalid zero income policy: %q", s)
	}
}

func (p ZeroIncomePolicy) String() string { return p.value }

func (p ZeroIncomePolicy) Equal(other ZeroIncomePolicy) bool { return p.value == other.value }
