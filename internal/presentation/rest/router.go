package rest

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// RouterConfig collects the handlers served over HTTP.
type RouterConfig struct {
	Evaluation *EvaluationHandler
	Health     *HealthHandler
	Metrics    http.Handler
	Limiter    *rate.Limiter
	Logger     *slog.Logger
}

// NewRouter builds the HTTP handler tree. Only the evaluation endpoint is
// rate limited; probes and metrics are always served.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	var evalMiddleware []Middleware
	if cfg.Limiter != nil {
		evalMiddleware = append(evalMiddleware, RateLimit(cfg.Limiter))
	}
	cfg.Evaluation.RegisterRoutes(mux, evalMiddleware...)
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux, RequestID(), Logging(cfg.Logger))
}
