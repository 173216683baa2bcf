package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// ConsumerOption tunes a Consumer.
type ConsumerOption func(*consumerOptions)

type consumerOptions struct {
	backoff    time.Duration
	attempts   int
	fromLatest bool
}

// WithRetry retries a failing handler up to attempts times in total, sleeping
// backoff between tries. The message is skipped once attempts run out.
func WithRetry(attempts int, backoff time.Duration) ConsumerOption {
	return func(o *consumerOptions) {
		if attempts > 0 {
			o.attempts = attempts
		}
		o.backoff = backoff
	}
}

// FromLatest starts a group-less consumer at the end of the topic instead of
// replaying it from the first offset.
func FromLatest() ConsumerOption {
	return func(o *consumerOptions) { o.fromLatest = true }
}

// Consumer reads a single topic and hands each message to a Handler. Offsets
// are committed only when the config names a consumer group.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
	opts    consumerOptions
}

// NewConsumer creates a Consumer. It does not dial the brokers.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger, opts ...ConsumerOption) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, errors.New("kafka: consumer topic is required")
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, err
	}

	o := consumerOptions{attempts: 1}
	for _, opt := range opts {
		opt(&o)
	}

	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  500 * time.Millisecond,
		Dialer:   dialer,
	}
	if cfg.ConsumerGroup == "" {
		readerCfg.StartOffset = kafkago.FirstOffset
		if o.fromLatest {
			readerCfg.StartOffset = kafkago.LastOffset
		}
	}

	return &Consumer{
		reader:  kafkago.NewReader(readerCfg),
		handler: handler,
		logger:  logger.With("topic", topic),
		opts:    o,
	}, nil
}

// Run consumes until ctx is cancelled, which is not reported as an error.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer starting", "group", c.reader.Config().GroupID)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopped")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, toMessage(m)); err != nil {
			c.logger.Error("message skipped",
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}

		if c.reader.Config().GroupID == "" {
			continue
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", "partition", m.Partition, "offset", m.Offset, "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg Message) error {
	var err error
	for attempt := 1; attempt <= c.opts.attempts; attempt++ {
		if err = c.handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == c.opts.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.backoff):
		}
	}
	return err
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Time:      m.Time,
		Key:       m.Key,
		Value:     m.Value,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
