package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aharo8014/Credit/pkg/events"
)

const (
	// AggregateTypeRiskAssessment identifies the aggregate that raises credit risk events.
	AggregateTypeRiskAssessment = "RiskAssessment"

	// EventTypeRiskAssessed is emitted for every completed evaluation.
	EventTypeRiskAssessed = "credit_risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an evaluation lands in the HIGH band.
	EventTypeHighRiskDetected = "credit_risk.high_risk.detected"
)

// RiskAssessed carries the scores of a completed evaluation. It intentionally
// holds no applicant attributes.
type RiskAssessed struct {
	events.BaseEvent
	AssessmentID uuid.UUID `json:"assessment_id"`
	Estimator    string    `json:"estimator"`
	RiskBand     string    `json:"risk_band"`
	AssessedAt   time.Time `json:"assessed_at"`
	PD           float64   `json:"pd"`
	LGD          float64   `json:"lgd"`
	EAD          float64   `json:"ead"`
	EL           float64   `json:"el"`
}

// NewRiskAssessed creates a RiskAssessed domain event.
func NewRiskAssessed(
	assessmentID uuid.UUID,
	estimator string,
	pd, lgd, ead, el float64,
	riskBand string,
	assessedAt time.Time,
) RiskAssessed {
	e := RiskAssessed{
		AssessmentID: assessmentID,
		Estimator:    estimator,
		RiskBand:     riskBand,
		AssessedAt:   assessedAt,
		PD:           pd,
		LGD:          lgd,
		EAD:          ead,
		EL:           el,
	}
	payload, _ := json.Marshal(struct {
		AssessmentID uuid.UUID `json:"assessment_id"`
		Estimator    string    `json:"estimator"`
		RiskBand     string    `json:"risk_band"`
		AssessedAt   time.Time `json:"assessed_at"`
		PD           float64   `json:"pd"`
		LGD          float64   `json:"lgd"`
		EAD          float64   `json:"ead"`
		EL           float64   `json:"el"`
	}{assessmentID, estimator, riskBand, assessedAt, pd, lgd, ead, el})

	e.BaseEvent = events.NewBaseEvent(EventTypeRiskAssessed, assessmentID, AggregateTypeRiskAssessment, payload, events.At(assessedAt))
	return e
}

// HighRiskDetected is emitted alongside RiskAssessed when expected loss reaches
// the HIGH band, so downstream reviewers can subscribe to it alone.
type HighRiskDetected struct {
	events.BaseEvent
	AssessmentID uuid.UUID `json:"assessment_id"`
	DetectedAt   time.Time `json:"detected_at"`
	EL           float64   `json:"el"`
}

// NewHighRiskDetected creates a HighRiskDetected domain event.
func NewHighRiskDetected(assessmentID uuid.UUID, el float64, detectedAt time.Time) HighRiskDetected {
	payload, _ := json.Marshal(struct {
		AssessmentID uuid.UUID `json:"assessment_id"`
		DetectedAt   time.Time `json:"detected_at"`
		EL           float64   `json:"el"`
	}{assessmentID, detectedAt, el})

	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateTypeRiskAssessment, payload, events.At(detectedAt)),
		AssessmentID: assessmentID,
		DetectedAt:   detectedAt,
		EL:           el,
	}
}
