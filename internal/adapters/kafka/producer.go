// Package kafka publishes booking lifecycle events for downstream consumers
// (notifications, analytics). Publishing is best-effort from the caller's
// point of view: the booking service logs and continues on failure.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"staybook/internal/domain"
)

type Producer struct {
	p     sarama.SyncProducer
	topic string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Producer{p: p, topic: topic}, nil
}

func (p *Producer) Publish(_ context.Context, ev domain.BookingEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, _, err = p.p.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.BookingID),
		Value: sarama.ByteEncoder(b),
	})
	return err
}

func (p *Producer) Close() error { return p.p.Close() }
