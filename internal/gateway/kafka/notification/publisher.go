package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/metrics"
	"dispatch/pkg/correlation"
	"github.com/IBM/sarama"
)

const serviceName = "kafka"

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func New(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, n entities.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(FromDomain(n))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(n.OrderID),
		Value: sarama.ByteEncoder(value),
	}
	if n.CorrelationID != "" {
		msg.Headers = []sarama.RecordHeader{{
			Key:   []byte(correlation.MetadataKey),
			Value: []byte(n.CorrelationID),
		}}
	}

	start := time.Now()
	_, _, err = p.producer.SendMessage(msg)
	code := metrics.CodeOK
	if err != nil {
		code = metrics.CodeUnknown
	}
	metrics.GatewayRequestDuration.WithLabelValues(serviceName, "Publish", code).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publish notification %s for order %s: %w", n.Kind, n.OrderID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
