// Command riskwatch tails the credit risk event topic and logs assessments
// and high-risk alerts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aharo8014/Credit/internal/infrastructure/config"
	"github.com/aharo8014/Credit/pkg/kafka"
	"github.com/aharo8014/Credit/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("riskwatch exited", "error", err)
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
		Service: "riskwatch",
	})

	w := newWatcher(logger)
	consumer, err := kafka.NewConsumer(kafka.Config{
		Brokers:       cfg.KafkaBrokers,
		ClientID:      "riskwatch",
		ConsumerGroup: cfg.KafkaConsumerGroup,
		TLS:           cfg.KafkaTLS,
	}, cfg.KafkaTopic, w.Handle, logger, kafka.WithRetry(3, 500*time.Millisecond))
	if err != nil {
		return fmt.Errorf("init consumer: %w", err)
	}
	defer consumer.Close()

	err = consumer.Run(ctx)

	sum := w.Summary()
	logger.Info("riskwatch stopped",
		"bands", sum.Bands,
		"high_risk_alerts", sum.HighRisk,
		"ignored_events", sum.Unknown,
	)
	return err
}
