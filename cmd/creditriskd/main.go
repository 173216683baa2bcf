package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aharo8014/Credit/internal/application/usecase"
	"github.com/aharo8014/Credit/internal/domain/port"
	"github.com/aharo8014/Credit/internal/infrastructure/config"
	"github.com/aharo8014/Credit/internal/infrastructure/kafka"
	"github.com/aharo8014/Credit/internal/infrastructure/messaging"
	"github.com/aharo8014/Credit/internal/infrastructure/telemetry"
	grpcpresentation "github.com/aharo8014/Credit/internal/presentation/grpc"
	"github.com/aharo8014/Credit/internal/presentation/rest"
	pkgkafka "github.com/aharo8014/Credit/pkg/kafka"
	"github.com/aharo8014/Credit/pkg/money"
	"github.com/aharo8014/Credit/pkg/observability"
)

const serviceName = "credit-risk-service"

func main() {
	if err := run(); err != nil {
		slog.Error("credit-risk-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting credit-risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"pd_strategy", cfg.PDStrategy,
		"lgd_strategy", cfg.LGDStrategy,
	)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := telemetry.NewRecorder(meterProvider.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("init recorder: %w", err)
	}

	engine, modelsReady, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}

	checks := map[string]rest.ReadinessCheck{"models": modelsReady}

	var publisher port.EventPublisher
	if cfg.KafkaEnabled {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:  cfg.KafkaBrokers,
			ClientID: serviceName,
			TLS:      cfg.KafkaTLS,
		})
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		defer producer.Close()

		publisher = kafka.NewPublisher(producer, cfg.KafkaTopic, logger)
		checks["kafka"] = producer.Ping
	} else {
		logger.Info("kafka disabled, logging domain events")
		publisher = messaging.NewLogPublisher(logger)
	}

	evaluateRisk := usecase.NewEvaluateRisk(engine, publisher, recorder, money.MustCurrency(cfg.DisplayCurrency), logger)

	// gRPC server.
	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewRiskServiceHandler(evaluateRisk, logger),
		grpcpresentation.ServerConfig{
			Address:     cfg.GRPCAddress(),
			TLSCertFile: cfg.TLSCertFile,
			TLSKeyFile:  cfg.TLSKeyFile,
			Reflection:  cfg.GRPCReflection,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// HTTP server.
	validator, err := rest.NewEvaluationSchemaValidator()
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Evaluation: rest.NewEvaluationHandler(evaluateRisk, validator, logger),
			Health:     rest.NewHealthHandler(logger, checks),
			Metrics:    metricsHandler,
			Limiter:    rest.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
			Logger:     logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("credit-risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"estimator", engine.EstimatorName(),
	)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	logger.Info("shutting down credit-risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-risk-service stopped")
	return serveErr
}
