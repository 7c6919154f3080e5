package log

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink streams redirect events to a Kafka topic for downstream analytics.
// Publishing is asynchronous and lossy on broker failure; the store remains
// the system of record.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaSink{client: client, topic: topic, logger: logger}, nil
}

type eventPayload struct {
	ID         string `json:"id"`
	OrgID      string `json:"organization_id"`
	OccurredAt string `json:"occurred_at"`
}

func (s *KafkaSink) Publish(ctx context.Context, e Event) {
	payload, err := json.Marshal(eventPayload{
		ID:         e.ID.String(),
		OrgID:      e.OrgID.String(),
		OccurredAt: e.At.Format(time.RFC3339Nano),
	})
	if err != nil {
		s.logger.Error("marshal redirect event", "error", err)
		return
	}
	record := &kgo.Record{Key: []byte(e.OrgID.String()), Value: payload}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Warn("publish redirect event to kafka", "error", err)
		}
	})
}

func (s *KafkaSink) Close() {
	s.client.Close()
}
