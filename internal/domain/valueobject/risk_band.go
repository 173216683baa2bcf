package valueobject

import "fmt"

// Expected-loss thresholds separating the risk bands. Lower bounds are inclusive.
const (
	ModerateExpectedLossThreshold = 500.0
	HighExpectedLossThreshold     = 5000.0
)

// RiskBand is an immutable value object representing the ordinal risk classification
// derived from expected loss.
type RiskBand struct {
	value string
}

var (
	RiskBandLow      = RiskBand{value: "LOW"}
	RiskBandModerate = RiskBand{value: "MODERATE"}
	RiskBandHigh     = RiskBand{value: "HIGH"}
)

// RiskBandFromString reconstructs a RiskBand from its string representation.
func RiskBandFromString(s string) (RiskBand, error) {
	switch s {
	case "LOW":
		return RiskBandLow, nil
	case "MODERATE":
		return RiskBandModerate, nil
	case "HIGH":
		return RiskBandHigh, nil
	default:
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
}

// RiskBandFromExpectedLoss classifies an expected loss amount.
//
//	el <  500          -> LOW
//	500 <= el < 5000   -> MODERATE
//	el >= 5000         -> HIGH
func RiskBandFromExpectedLoss(el float64) RiskBand {
	switch {
	case el >= HighExpectedLossThreshold:
		return RiskBandHigh
	case el >= ModerateExpectedLossThreshold:
		return RiskBandModerate
	default:
		return RiskBandLow
	}
}

// String returns the string representation.
func (b RiskBand) String() string {
	return b.value
}

// IsZero returns true if the RiskBand has not been set.
func (b RiskBand) IsZero() bool {
	return b.value == ""
}

// Equal checks equality with another RiskBand.
func (b RiskBand) Equal(other RiskBand) bool {
	return b.value == other.value
}
