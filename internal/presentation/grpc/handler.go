package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aharo8014/Credit/internal/application/dto"
	"github.com/aharo8014/Credit/internal/domain/model"
)

// Evaluator runs a single risk evaluation.
type Evaluator interface {
	Execute(ctx context.Context, req dto.EvaluateRiskRequest) (dto.EvaluateRiskResponse, error)
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	evaluator Evaluator
	logger    *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(evaluator Evaluator, logger *slog.Logger) *RiskServiceHandler {
	return &RiskServiceHandler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// Proto-aligned request/response message types. Monetary amounts travel as
// decimal strings.

// EvaluateRiskRequest represents the proto EvaluateRiskRequest message.
type EvaluateRiskRequest struct {
	MaritalStatus        string `json:"marital_status"`
	CreditType           string `json:"credit_type"`
	MonthlyIncome        string `json:"monthly_income"`
	MonthlyExpenses      string `json:"monthly_expenses"`
	CurrentDebt          string `json:"current_debt"`
	NetWorth             string `json:"net_worth"`
	AvailableSavings     string `json:"available_savings"`
	AdditionalIncome     string `json:"additional_income,omitempty"`
	MortgagePayment      string `json:"mortgage_payment,omitempty"`
	RentPayment          string `json:"rent_payment,omitempty"`
	CreditLimit          string `json:"credit_limit"`
	RequestedAmount      string `json:"requested_amount"`
	Age                  int32  `json:"age"`
	EmploymentYears      int32  `json:"employment_years"`
	CreditAccounts       int32  `json:"credit_accounts"`
	DelinquentAccounts   int32  `json:"delinquent_accounts"`
	CreditHistoryYears   int32  `json:"credit_history_years"`
	LatePaymentsLastYear int32  `json:"late_payments_last_year"`
	Bankruptcies         int32  `json:"bankruptcies"`
	CreditInquiries      int32  `json:"credit_inquiries"`
	UtilizationPct       int32  `json:"utilization_pct"`
	CreditCards          int32  `json:"credit_cards"`
	TermMonths           int32  `json:"term_months"`
}

// EvaluateRiskResponse represents the proto EvaluateRiskResponse message.
type EvaluateRiskResponse struct {
	AssessmentID string  `json:"assessment_id"`
	RiskBand     string  `json:"risk_band"`
	PDPercent    string  `json:"pd_percent"`
	LGDPercent   string  `json:"lgd_percent"`
	EADDisplay   string  `json:"ead_display"`
	ELDisplay    string  `json:"el_display"`
	Estimator    string  `json:"estimator"`
	AssessedAt   string  `json:"assessed_at"`
	PD           float64 `json:"pd"`
	LGD          float64 `json:"lgd"`
	EAD          float64 `json:"ead"`
	EL           float64 `json:"el"`
}

// EvaluateRisk scores one applicant.
func (h *RiskServiceHandler) EvaluateRisk(ctx context.Context, req *EvaluateRiskRequest) (*EvaluateRiskResponse, error) {
	in, err := toDTO(req)
	if err != nil {
		return nil, err
	}

	resp, err := h.evaluator.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &EvaluateRiskResponse{
		AssessmentID: resp.AssessmentID.String(),
		PD:           resp.PD,
		LGD:          resp.LGD,
		EAD:          resp.EAD,
		EL:           resp.EL,
		RiskBand:     resp.RiskBand,
		PDPercent:    resp.PDPercent,
		LGDPercent:   resp.LGDPercent,
		EADDisplay:   resp.EADDisplay,
		ELDisplay:    resp.ELDisplay,
		Estimator:    resp.Estimator,
		AssessedAt:   resp.AssessedAt.Format(time.RFC3339Nano),
	}, nil
}

func toDTO(req *EvaluateRiskRequest) (dto.EvaluateRiskRequest, error) {
	var violations []*errdetails.BadRequest_FieldViolation
	amount := func(field, raw string, required bool) decimal.Decimal {
		if raw == "" {
			if required {
				violations = append(violations, &errdetails.BadRequest_FieldViolation{
					Field: field, Description: "is required",
				})
			}
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field: field, Description: "must be a decimal amount",
			})
			return decimal.Zero
		}
		return d
	}

	out := dto.EvaluateRiskRequest{
		MonthlyIncome:        amount("monthly_income", req.MonthlyIncome, true),
		MonthlyExpenses:      amount("monthly_expenses", req.MonthlyExpenses, true),
		CurrentDebt:          amount("current_debt", req.CurrentDebt, true),
		NetWorth:             amount("net_worth", req.NetWorth, true),
		AvailableSavings:     amount("available_savings", req.AvailableSavings, true),
		AdditionalIncome:     amount("additional_income", req.AdditionalIncome, false),
		MortgagePayment:      amount("mortgage_payment", req.MortgagePayment, false),
		RentPayment:          amount("rent_payment", req.RentPayment, false),
		CreditLimit:          amount("credit_limit", req.CreditLimit, true),
		RequestedAmount:      amount("requested_amount", req.RequestedAmount, true),
		MaritalStatus:        req.MaritalStatus,
		CreditType:           req.CreditType,
		Age:                  int(req.Age),
		EmploymentYears:      int(req.EmploymentYears),
		CreditAccounts:       int(req.CreditAccounts),
		DelinquentAccounts:   int(req.DelinquentAccounts),
		CreditHistoryYears:   int(req.CreditHistoryYears),
		LatePaymentsLastYear: int(req.LatePaymentsLastYear),
		Bankruptcies:         int(req.Bankruptcies),
		CreditInquiries:      int(req.CreditInquiries),
		UtilizationPct:       int(req.UtilizationPct),
		CreditCards:          int(req.CreditCards),
		TermMonths:           int(req.TermMonths),
	}
	if len(violations) > 0 {
		return dto.EvaluateRiskRequest{}, withViolations(codes.InvalidArgument, "malformed request", violations)
	}
	return out, nil
}

func (h *RiskServiceHandler) toStatus(ctx context.Context, err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, model.ErrInputOutOfRange),
		errors.Is(err, model.ErrInvalidRelationalConstraint),
		errors.Is(err, model.ErrDivisionByZeroInLGD):
		code = codes.InvalidArgument
	case errors.Is(err, model.ErrEstimatorUnavailable):
		code = codes.Unavailable
	}

	if code == codes.Internal {
		h.logger.ErrorContext(ctx, "evaluation failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}

	var violations []*errdetails.BadRequest_FieldViolation
	for _, fe := range model.FieldErrors(err) {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       fe.Field,
			Description: model.ErrorCode(fe) + ": " + fe.Reason,
		})
	}
	return withViolations(code, model.ErrorCode(err)+": "+err.Error(), violations)
}

func withViolations(code codes.Code, msg string, violations []*errdetails.BadRequest_FieldViolation) error {
	st := status.New(code, msg)
	if len(violations) == 0 {
		return st.Err()
	}
	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
