package valueobject

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// MaritalStatus – immutable value object
// ---------------------------------------------------------------------------

// MaritalStatus is the applicant's declared marital status.
type MaritalStatus struct {
	value string
}

const (
	maritalSingle   = "SINGLE"
	maritalMarried  = "MARRIED"
	maritalDivorced = "DIVORCED"
	maritalWidowed  = "WIDOWED"
)

var (
	MaritalStatusSingle   = MaritalStatus{value: maritalSingle}
	MaritalStatusMarried  = MaritalStatus{value: maritalMarried}
	MaritalStatusDivorced = MaritalStatus{value: maritalDivorced}
	MaritalStatusWidowed  = MaritalStatus{value: maritalWidowed}
)

var validMaritalStatuses = map[string]MaritalStatus{
	maritalSingle:   MaritalStatusSingle,
	maritalMarried:  MaritalStatusMarried,
	maritalDivorced: MaritalStatusDivorced,
	maritalWidowed:  MaritalStatusWidowed,
}

// NewMaritalStatus parses a marital status. Matching is case-insensitive.
func NewMaritalStatus(s string) (MaritalStatus, error) {
	v, ok := validMaritalStatuses[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return MaritalStatus{}, fmt.Errorf("invalid marital status: %q", s)
	}
	return v, nil
}

func (m MaritalStatus) String() string { return m.value }

// IsZero returns true if the status has not been initialised.
func (m MaritalStatus) IsZero() bool { return m.value == "" }

func (m MaritalStatus) Equal(other MaritalStatus) bool { return m.value == other.value }

// ---------------------------------------------------------------------------
// CreditType – immutable value object
// ---------------------------------------------------------------------------

// CreditType is the product the applicant is requesting.
type CreditType struct {
	value string
}

const (
	creditMortgage    = "MORTGAGE"
	creditAuto        = "AUTO"
	creditConsumer    = "CONSUMER"
	creditBusiness    = "BUSINESS"
	creditEducational = "EDUCATIONAL"
)

var (
	CreditTypeMortgage    = CreditType{value: creditMortgage}
	CreditTypeAuto        = CreditType{value: creditAuto}
	CreditTypeConsumer    = CreditType{value: creditConsumer}
	CreditTypeBusiness    = CreditType{value: creditBusiness}
	CreditTypeEducational = CreditType{value: creditEducational}
)

var validCreditTypes = map[string]CreditType{
	creditMortgage:    CreditTypeMortgage,
	creditAuto:        CreditTypeAuto,
	creditConsumer:    CreditTypeConsumer,
	creditBusiness:    CreditTypeBusiness,
	creditEducational: CreditTypeEducational,
}

// NewCreditType parses a credit type. Matching is case-insensitive.
func NewCreditType(s string) (CreditType, error) {
	v, ok := validCreditTypes[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return CreditType{}, fmt.Errorf("invalid credit type: %q", s)
	}
	return v, nil
}

func (c CreditType) String() string { return c.value }

// IsZero returns true if the credit type has not been initialised.
func (c CreditType) IsZero() bool { return c.value == "" }

func (c CreditType) Equal(other CreditType) bool { return c.value == other.value }
