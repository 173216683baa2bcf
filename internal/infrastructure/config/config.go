package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aharo8014/Credit/internal/domain/valueobject"
	"github.com/aharo8014/Credit/pkg/money"
)

// PD and LGD strategy names.
const (
	StrategyClosedForm = "closed_form"
	StrategyLearned    = "learned"
	StrategyBlended    = "blended"
)

// Config holds all configuration for the credit risk service.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	Environment string
	LogLevel    string
	LogFormat   string

	PDStrategy       string
	LGDStrategy      string
	ZeroIncomePolicy string
	BlendWeight      float64

	ModelDir       string
	TrainingSeed   uint64
	TrainingSample int

	DisplayCurrency string

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
	KafkaTLS     bool
	// KafkaConsumerGroup is used by riskwatch; empty replays the topic.
	KafkaConsumerGroup string

	OTLPEndpoint   string
	TracingEnabled bool

	GRPCReflection bool
	TLSCertFile    string
	TLSKeyFile     string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads a .env file when present, then configuration from environment
// variables with sensible defaults. Variables already set in the process win
// over the .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GRPCPort:    getEnv("GRPC_PORT", "8090"),
		HTTPPort:    getEnv("HTTP_PORT", "9090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		PDStrategy:       strings.ToLower(getEnv("PD_STRATEGY", StrategyClosedForm)),
		LGDStrategy:      strings.ToLower(getEnv("LGD_STRATEGY", StrategyClosedForm)),
		ZeroIncomePolicy: strings.ToLower(getEnv("LGD_ZERO_INCOME_POLICY", "reject")),
		BlendWeight:      getEnvFloat("PD_BLEND_WEIGHT", 0.3),

		ModelDir:       getEnv("MODEL_DIR", ""),
		TrainingSeed:   uint64(getEnvInt("MODEL_TRAINING_SEED", 42)),
		TrainingSample: getEnvInt("MODEL_TRAINING_SAMPLES", 2000),

		DisplayCurrency: getEnv("DISPLAY_CURRENCY", "USD"),

		KafkaEnabled: getEnvBool("KAFKA_ENABLED", false),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "credit-risk.events"),
		KafkaTLS:     getEnvBool("KAFKA_TLS", false),

		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", ""),

		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),

		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),
	}
}

// Validate rejects unknown strategy names and inconsistent settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.PDStrategy {
	case StrategyClosedForm, StrategyLearned, StrategyBlended:
	default:
		errs = append(errs, fmt.Errorf("PD_STRATEGY: unknown strategy %q", c.PDStrategy))
	}
	switch c.LGDStrategy {
	case StrategyClosedForm, StrategyLearned:
	default:
		errs = append(errs, fmt.Errorf("LGD_STRATEGY: unknown strategy %q", c.LGDStrategy))
	}
	if _, err := valueobject.NewZeroIncomePolicy(c.ZeroIncomePolicy); err != nil {
		errs = append(errs, fmt.Errorf("LGD_ZERO_INCOME_POLICY: %w", err))
	}
	if c.BlendWeight < 0 || c.BlendWeight > 1 {
		errs = append(errs, fmt.Errorf("PD_BLEND_WEIGHT: must be within [0,1], got %v", c.BlendWeight))
	}
	if c.TrainingSample <= 0 {
		errs = append(errs, fmt.Errorf("MODEL_TRAINING_SAMPLES: must be positive, got %d", c.TrainingSample))
	}
	if _, err := money.NewCurrency(c.DisplayCurrency); err != nil {
		errs = append(errs, fmt.Errorf("DISPLAY_CURRENCY: %w", err))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS: required when KAFKA_ENABLED=true"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// UsesLearnedModels reports whether start-up must train or load models.
func (c *Config) UsesLearnedModels() bool {
	return c.PDStrategy != StrategyClosedForm || c.LGDStrategy != StrategyClosedForm
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
