// Package producer publishes entry lifecycle events to Kafka.
//
// Publishing is fail-open: the derivation that triggered an event has already
// been committed, so delivery failures are logged and counted, never returned.
// A circuit breaker stops producing while the brokers keep failing and lets
// one trial call through per cooldown.
package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"esgtrack/internal/platform/config"
	"esgtrack/internal/platform/metrics"
	"esgtrack/pkg/platform/circuit"
)

// EventHeader names the record header carrying the event type.
const EventHeader = "event"

// recordProducer is the slice of *kgo.Client the producer uses.
type recordProducer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

type Producer struct {
	client  recordProducer
	topic   string
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Producer)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Producer) {
		p.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Producer) {
		p.breaker = b
	}
}

// New connects a producer to the configured entries topic.
func New(cfg config.KafkaConfig, opts ...Option) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.EntriesTopic),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newProducer(client, cfg.EntriesTopic, opts...), nil
}

func newProducer(client recordProducer, topic string, opts ...Option) *Producer {
	p := &Producer{
		client:  client,
		topic:   topic,
		breaker: circuit.New("kafka-producer", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(1)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish hands payload to Kafka keyed by key. It never blocks on delivery.
func (p *Producer) Publish(ctx context.Context, key, event string, payload any) {
	if !p.breaker.Allow() {
		p.metrics.IncrementEntryEvent(event, "dropped")
		p.logger.DebugContext(ctx, "entry event dropped, circuit open",
			"event", event,
			"key", key,
		)
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.metrics.IncrementEntryEvent(event, "failed")
		p.logger.ErrorContext(ctx, "failed to encode entry event",
			"event", event,
			"key", key,
			"error", err,
		)
		return
	}

	rec := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(key),
		Value:   value,
		Headers: []kgo.RecordHeader{{Key: EventHeader, Value: []byte(event)}},
	}
	// Delivery outlives the request that triggered it.
	p.client.Produce(context.WithoutCancel(ctx), rec, func(_ *kgo.Record, err error) {
		if err != nil {
			p.metrics.IncrementEntryEvent(event, "failed")
			if _, change := p.breaker.RecordFailure(); change.Opened {
				p.logger.Warn("entry event circuit opened", "topic", p.topic)
			}
			p.logger.Error("failed to deliver entry event",
				"event", event,
				"key", key,
				"error", err,
			)
			return
		}
		p.metrics.IncrementEntryEvent(event, "delivered")
		if _, change := p.breaker.RecordSuccess(); change.Closed {
			p.logger.Info("entry event circuit closed", "topic", p.topic)
		}
	})
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close(ctx context.Context) error {
	err := p.client.Flush(ctx)
	p.client.Close()
	return err
}
