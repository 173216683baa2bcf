package grpc_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/aharo8014/Credit/internal/application/dto"
	"github.com/aharo8014/Credit/internal/application/usecase"
	"github.com/aharo8014/Credit/internal/domain/model"
	"github.com/aharo8014/Credit/internal/domain/service"
	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/internal/infrastructure/messaging"
	"github.com/aharo8014/Credit/internal/infrastructure/telemetry"
	riskgrpc "github.com/aharo8014/Credit/internal/presentation/grpc"
	"github.com/aharo8014/Credit/pkg/money"
	"github.com/aharo8014/Credit/pkg/tlsutil"
)

type stubEvaluator struct {
	err error
}

func (s stubEvaluator) Execute(context.Context, dto.EvaluateRiskRequest) (dto.EvaluateRiskResponse, error) {
	return dto.EvaluateRiskResponse{}, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func closedFormEvaluator(t *testing.T) riskgrpc.Evaluator {
	t.Helper()
	recorder, err := telemetry.NewRecorder(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	engine := service.NewRiskEngine(
		service.NewLogisticPDEstimator(),
		service.NewClosedFormLGDEstimator(valueobject.ZeroIncomeReject),
	)
	return usecase.NewEvaluateRisk(engine, messaging.NewLogPublisher(discardLogger()), recorder, money.USD, discardLogger())
}

// startServer serves the handler over an in-memory listener and returns a
// connected client.
func startServer(t *testing.T, evaluator riskgrpc.Evaluator) *grpclib.ClientConn {
	t.Helper()
	return startServerWith(t, evaluator, riskgrpc.ServerConfig{Address: "bufnet"}, insecure.NewCredentials())
}

func startServerWith(t *testing.T, evaluator riskgrpc.Evaluator, cfg riskgrpc.ServerConfig, creds credentials.TransportCredentials) *grpclib.ClientConn {
	t.Helper()

	srv, err := riskgrpc.NewServer(
		riskgrpc.NewRiskServiceHandler(evaluator, discardLogger()),
		cfg,
		discardLogger(),
	)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///localhost",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(creds),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func exampleRequest() *riskgrpc.EvaluateRiskRequest {
	return &riskgrpc.EvaluateRiskRequest{
		Age:                  30,
		MaritalStatus:        "single",
		MonthlyIncome:        "2000",
		MonthlyExpenses:      "1200",
		CurrentDebt:          "10000",
		NetWorth:             "5000",
		AvailableSavings:     "1000",
		EmploymentYears:      3,
		CreditAccounts:       5,
		DelinquentAccounts:   1,
		CreditHistoryYears:   5,
		LatePaymentsLastYear: 1,
		CreditInquiries:      2,
		CreditLimit:          "15000",
		RequestedAmount:      "10000",
		CreditType:           "consumer",
		UtilizationPct:       40,
		CreditCards:          2,
		TermMonths:           36,
	}
}

func fieldViolations(t *testing.T, err error) []*errdetails.BadRequest_FieldViolation {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			return br.GetFieldViolations()
		}
	}
	return nil
}

func TestEvaluateRisk_WorkedExample(t *testing.T) {
	client := riskgrpc.NewRiskServiceClient(startServer(t, closedFormEvaluator(t)))

	resp, err := client.EvaluateRisk(context.Background(), exampleRequest())
	require.NoError(t, err)
	assert.InDelta(t, 0.414272, resp.PD, 1e-5)
	assert.InDelta(t, 0.80, resp.LGD, 1e-9)
	assert.InDelta(t, 4000.0, resp.EAD, 1e-9)
	assert.InDelta(t, 1325.67, resp.EL, 0.01)
	assert.Equal(t, "MODERATE", resp.RiskBand)
	assert.Equal(t, "$1,325.67", resp.ELDisplay)
	assert.Equal(t, "pd=closed_form,lgd=closed_form", resp.Estimator)
	assert.NotEmpty(t, resp.AssessmentID)
}

func TestEvaluateRisk_ValidationIsInvalidArgument(t *testing.T) {
	client := riskgrpc.NewRiskServiceClient(startServer(t, closedFormEvaluator(t)))

	req := exampleRequest()
	req.CreditAccounts = 1
	req.DelinquentAccounts = 4

	_, err := client.EvaluateRisk(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	violations := fieldViolations(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "delinquent_accounts", violations[0].GetField())
}

func TestEvaluateRisk_MalformedAmount(t *testing.T) {
	client := riskgrpc.NewRiskServiceClient(startServer(t, closedFormEvaluator(t)))

	req := exampleRequest()
	req.NetWorth = "five thousand"
	req.MonthlyIncome = ""

	_, err := client.EvaluateRisk(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	fields := make([]string, 0, 2)
	for _, v := range fieldViolations(t, err) {
		fields = append(fields, v.GetField())
	}
	assert.ElementsMatch(t, []string{"net_worth", "monthly_income"}, fields)
}

func TestEvaluateRisk_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"estimator unavailable", fmt.Errorf("failed to evaluate risk: %w", model.ErrEstimatorUnavailable), codes.Unavailable},
		{"zero income", fmt.Errorf("failed to evaluate risk: %w", model.ErrDivisionByZeroInLGD), codes.InvalidArgument},
		{"unexpected failure", errors.New("failed to create assessment: clock skew"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := riskgrpc.NewRiskServiceClient(startServer(t, stubEvaluator{err: tt.err}))

			_, err := client.EvaluateRisk(context.Background(), exampleRequest())
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
			if tt.code == codes.Internal {
				assert.NotContains(t, err.Error(), "clock skew")
			}
		})
	}
}

func TestServer_HealthServing(t *testing.T) {
	conn := startServer(t, stubEvaluator{})

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: "creditrisk.v1.RiskService",
	})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestNewServer_BadTLSFiles(t *testing.T) {
	_, err := riskgrpc.NewServer(
		riskgrpc.NewRiskServiceHandler(stubEvaluator{}, discardLogger()),
		riskgrpc.ServerConfig{Address: ":0", TLSCertFile: "/nonexistent/cert.pem", TLSKeyFile: "/nonexistent/key.pem"},
		discardLogger(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLS")
}

func TestServer_TLS(t *testing.T) {
	certs, err := tlsutil.GenerateDevCertificates([]string{"localhost"}, t.TempDir())
	require.NoError(t, err)
	creds, err := tlsutil.ClientTLSConfig(certs.CAFile)
	require.NoError(t, err)

	conn := startServerWith(t, closedFormEvaluator(t), riskgrpc.ServerConfig{
		Address:     "bufnet",
		TLSCertFile: certs.CertFile,
		TLSKeyFile:  certs.KeyFile,
	}, creds)

	resp, err := riskgrpc.NewRiskServiceClient(conn).EvaluateRisk(context.Background(), exampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "MODERATE", resp.RiskBand)
}
