package publisher

import (
	"context"
	"time"

	"github.com/nehueninos/nhnproparts/orders-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic     = "orders-placed"
	DefaultBatchSize = 100
)

// Writer is the subset of *kafka.Writer the poller needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OutboxPoller struct {
	tick      time.Duration
	batchSize int
	repo      repository.OutboxRepository
	writer    Writer
	log       zerolog.Logger

	published prometheus.Counter
	failures  prometheus.Counter
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewOutboxPoller(repo repository.OutboxRepository, writer Writer, tick time.Duration, batchSize int, log zerolog.Logger) *OutboxPoller {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &OutboxPoller{
		tick:      tick,
		batchSize: batchSize,
		repo:      repo,
		writer:    writer,
		log:       log.With().Str("component", "outbox_poller").Logger(),
	}
}

// Run polls until ctx is cancelled. Events that fail to publish stay
// unprocessed and are picked up again on the next tick.
func (p *OutboxPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *OutboxPoller) WithMetrics(reg prometheus.Registerer) *OutboxPoller {
	p.published = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_outbox_events_published_total",
		Help: "Outbox events published to Kafka and marked processed.",
	})
	p.failures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_outbox_publish_failures_total",
		Help: "Outbox events that failed to publish or to be marked processed.",
	})
	reg.MustRegister(p.published, p.failures)
	return p
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

// processUnpublishedEvents returns how many events were published and marked.
func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) int {
	events, err := p.repo.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch outbox events")
		return 0
	}

	published := 0
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to publish event")
			p.inc(p.failures)
			continue
		}
		if err := p.repo.MarkEventAsProcessed(ctx, event.ID); err != nil {
			p.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to mark event as processed")
			p.inc(p.failures)
			continue
		}
		p.log.Debug().
			Int64("event_id", event.ID).
			Str("order_id", event.AggregateID).
			Str("event_type", event.EventType).
			Msg("event published")
		published++
		p.inc(p.published)
	}
	return published
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id keeps one order on one partition
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *OutboxPoller) inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
