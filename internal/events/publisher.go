package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"shopsync/internal/logger"
)

// SyncRequested asks the worker to run a full sync for one shop.
type SyncRequested struct {
	ShopDomain  string    `json:"shop_domain"`
	Trigger     string    `json:"trigger"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher writes sync-request events to Kafka. Keyed by shop domain so
// events for one shop stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

func (p *Publisher) PublishSyncRequested(shopDomain, trigger string) error {
	event := SyncRequested{
		ShopDomain:  shopDomain,
		Trigger:     trigger,
		RequestedAt: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(shopDomain),
		Value: value,
	}); err != nil {
		return err
	}

	p.logger.Debug("Published sync request for shop %s (trigger=%s)", shopDomain, trigger)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
