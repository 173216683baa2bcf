package service

import (
	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
)

// CalculateEAD returns the exposure at default: the requested amount scaled by
// the utilization percentage.
func CalculateEAD(profile model.ApplicantProfile) float64 {
	r := profile.RequestedCredit()
	return r.RequestedAmount.InexactFloat64() * (float64(r.UtilizationPct) / 100)
}

// AggregateExpectedLoss returns pd*lgd*ead, multiplied in that order.
func AggregateExpectedLoss(pd, lgd, ead float64) float64 {
	return pd * lgd * ead
}

// ClassifyRisk maps an expected loss to its band.
func ClassifyRisk(el float64) valueobject.RiskBand {
	return valueobject.RiskBandFromExpectedLoss(el)
}
