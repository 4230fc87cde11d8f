package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types emitted by the scheduling engine.
const (
	EventWorkOrderCreated     = "work_order.created"
	EventTaskInstanceCreated  = "task_instance.created"
	EventTaskInstanceComplete = "task_instance.completed"
)

// Envelope is the JSON payload written to the event topic.
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher writes domain events to Kafka. A nil Publisher is valid and drops
// all events, so callers never need to guard against a disabled event stream.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher from a comma-separated broker list. An empty
// list disables event publishing.
func NewPublisher(brokers, topic string) *Publisher {
	if brokers == "" {
		return nil
	}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      strings.Split(brokers, ","),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: int(kafka.RequireOne),
		Async:        false,
	})
	log.Printf("Event publisher configured for topic: %s", topic)
	return &Publisher{writer: writer}
}

// Publish writes one event keyed by entity ID. Failures are logged, not
// returned: event delivery must never abort the mutation that produced it.
func (p *Publisher) Publish(ctx context.Context, eventType string, entityID uint64, payload interface{}) {
	if p == nil {
		return
	}

	value, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		log.Printf("Error marshalling %s event for entity %d: %v", eventType, entityID, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(entityID, 10)),
		Value: value,
	}
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		log.Printf("Error publishing %s event for entity %d: %v", eventType, entityID, err)
	}
}

// Close shuts the underlying writer down.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
