package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aharo8014/Credit/internal/application/dto"
	"github.com/aharo8014/Credit/internal/domain/model"
)

const (
	maxBodyBytes = 64 << 10

	codeMalformedJSON   = "MALFORMED_JSON"
	codeSchemaViolation = "SCHEMA_VIOLATION"
)

// Evaluator runs a single risk evaluation.
type Evaluator interface {
	Execute(ctx context.Context, req dto.EvaluateRiskRequest) (dto.EvaluateRiskResponse, error)
}

// EvaluationHandler serves the risk evaluation endpoint.
type EvaluationHandler struct {
	evaluator Evaluator
	validator *SchemaValidator
	logger    *slog.Logger
}

// NewEvaluationHandler creates an evaluation handler.
func NewEvaluationHandler(evaluator Evaluator, validator *SchemaValidator, logger *slog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes registers the evaluation endpoint, wrapped in mws.
func (h *EvaluationHandler) RegisterRoutes(mux *http.ServeMux, mws ...Middleware) {
	mux.Handle("POST /api/v1/risk/evaluations", Chain(http.HandlerFunc(h.Evaluate), mws...))
}

// Evaluate handles POST /api/v1/risk/evaluations.
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(codeMalformedJSON,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody(codeMalformedJSON, "failed to read request body"))
		return
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, errorBody(codeMalformedJSON, "request body is not valid JSON"))
		return
	}

	violations, err := h.validator.Validate(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(codeMalformedJSON, err.Error()))
		return
	}
	if len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Code:       codeSchemaViolation,
			Message:    "request does not match the evaluation schema",
			Violations: violations,
		})
		return
	}

	var req dto.EvaluateRiskRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(codeMalformedJSON, err.Error()))
		return
	}

	resp, err := h.evaluator.Execute(r.Context(), req)
	if err != nil {
		h.writeEvaluationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EvaluationHandler) writeEvaluationError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "evaluation failed", "error", err)
		writeJSON(w, status, errorBody(model.ErrorCode(err), "internal error"))
		return
	}
	writeJSON(w, status, dto.NewErrorResponse(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInputOutOfRange),
		errors.Is(err, model.ErrInvalidRelationalConstraint),
		errors.Is(err, model.ErrDivisionByZeroInLGD):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrEstimatorUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(code, message string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: message}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
