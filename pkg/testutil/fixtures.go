package testutil

import (
	"encoding/json"
	"maps"
)

// ExampleApplicant is the worked example evaluation request: pd ~ 0.4143,
// lgd 0.80, ead 4000, el ~ 1325.67, band MODERATE.
var ExampleApplicant = map[string]any{
	"age":                     30,
	"marital_status":          "single",
	"monthly_income":          "2000",
	"monthly_expenses":        "1200",
	"current_debt":            "10000",
	"net_worth":               "5000",
	"available_savings":       "1000",
	"additional_income":       "0",
	"mortgage_payment":        "0",
	"rent_payment":            "0",
	"employment_years":        3,
	"credit_accounts":         5,
	"delinquent_accounts":     1,
	"credit_history_years":    5,
	"late_payments_last_year": 1,
	"bankruptcies":            0,
	"credit_inquiries":        2,
	"credit_limit":            "15000",
	"requested_amount":        "10000",
	"credit_type":             "consumer",
	"utilization_pct":         40,
	"credit_cards":            2,
	"term_months":             36,
}

// ApplicantJSON returns the example applicant with the given fields
// overridden, encoded as JSON. A nil override value deletes the field.
func ApplicantJSON(overrides map[string]any) []byte {
	body := maps.Clone(ExampleApplicant)
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
			continue
		}
		body[k] = v
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return data
}
