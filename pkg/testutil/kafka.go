package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/aharo8014/Credit/pkg/kafka"
)

const defaultKafkaImage = "confluentinc/confluent-local:7.6.1"

// KafkaContainer is a throwaway single-node broker for integration tests.
type KafkaContainer struct {
	Container *tckafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts a broker and registers its termination with
// t.Cleanup. KAFKA_TEST_IMAGE overrides the image.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	image := os.Getenv("KAFKA_TEST_IMAGE")
	if image == "" {
		image = defaultKafkaImage
	}

	container, err := tckafka.Run(ctx, image, tckafka.WithClusterID("credit-risk-test"))
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("warning: failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	if err != nil {
		t.Fatalf("failed to get kafka brokers: %v", err)
	}
	return &KafkaContainer{Container: container, Brokers: brokers}
}

// Config returns a client configuration pointing at the container.
func (kc *KafkaContainer) Config(clientID string) kafka.Config {
	return kafka.Config{Brokers: kc.Brokers, ClientID: clientID}
}
