package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/session"
)

// KafkaConfig configures the Kafka sink. An empty Brokers list disables it.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Enabled reports whether enough is configured to publish.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecorder publishes each record as a JSON message keyed by session ID.
type KafkaRecorder struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaRecorder creates a producer for cfg.Topic.
func NewKafkaRecorder(cfg KafkaConfig, logger *zap.Logger) *KafkaRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
	logger.Info("kafka producer ready",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return &KafkaRecorder{writer: w, logger: logger}
}

// Record validates rec and publishes it.
func (k *KafkaRecorder) Record(ctx context.Context, rec session.Record) error {
	if err := Validate(rec); err != nil {
		return err
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.SessionID),
		Value: value,
		Time:  rec.Timestamp,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish session %s: %w", rec.SessionID, err)
	}
	return nil
}

// Close flushes pending messages and closes the producer.
func (k *KafkaRecorder) Close() error {
	return k.writer.Close()
}
