package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharo8014/Credit/internal/presentation/rest"
	"github.com/aharo8014/Credit/pkg/testutil"
)

func serve(h *rest.HealthHandler, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(rest.NewHealthHandler(discardLogger(), nil), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "credit-risk-service", body["service"])
}

func TestReadyz_AllChecksPass(t *testing.T) {
	h := rest.NewHealthHandler(discardLogger(), map[string]rest.ReadinessCheck{
		"models": func(context.Context) error { return nil },
	})

	rec := serve(h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]any{"models": "ok"}, body["checks"])
}

func TestReadyz_FailingCheck(t *testing.T) {
	h := rest.NewHealthHandler(discardLogger(), map[string]rest.ReadinessCheck{
		"models": func(context.Context) error { return nil },
		"kafka":  func(context.Context) error { return errors.New("no brokers reachable") },
	})

	rec := serve(h, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, "not_ready", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "ok", checks["models"])
	assert.Equal(t, "no brokers reachable", checks["kafka"])
}

func TestRouter_ServesMetricsWithoutRateLimit(t *testing.T) {
	validator, err := rest.NewEvaluationSchemaValidator()
	require.NoError(t, err)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	h := rest.NewRouter(rest.RouterConfig{
		Evaluation: rest.NewEvaluationHandler(&stubEvaluator{}, validator, discardLogger()),
		Health:     rest.NewHealthHandler(discardLogger(), nil),
		Metrics:    metrics,
		Limiter:    rest.NewLimiter(1, 1),
		Logger:     discardLogger(),
	})

	assert.Equal(t, http.StatusOK, post(t, h, testutil.ApplicantJSON(nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(t, h, testutil.ApplicantJSON(nil)).Code)

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
}
