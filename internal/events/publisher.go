package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"zscaler-release-feed/internal/models"
)

// MessageWriter abstracts kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits aggregated items and the run report to a Kafka topic for
// downstream consumers. The RSS artifact on disk stays the source of truth;
// publish failures are reported to the caller and logged there, never fatal.
type Publisher struct {
	writer MessageWriter
}

// NewPublisher creates a Kafka publisher for the given broker and topic.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: false,
		},
	}
}

// NewPublisherWithWriter builds a publisher using a custom writer (tests).
func NewPublisherWithWriter(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Close shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// itemEvent is the per-item payload on the topic.
type itemEvent struct {
	RunID string          `json:"run_id"`
	Kind  string          `json:"kind"`
	Item  models.FeedItem `json:"item"`
}

// reportEvent closes out a run on the topic.
type reportEvent struct {
	RunID  string        `json:"run_id"`
	Kind   string        `json:"kind"`
	Report models.Report `json:"report"`
}

// PublishItems writes one message per aggregated item, keyed by run ID.
func (p *Publisher) PublishItems(ctx context.Context, runID string, items []models.FeedItem) error {
	if len(items) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(itemEvent{RunID: runID, Kind: "item", Item: item})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(runID),
			Value: payload,
			Time:  time.Now().UTC(),
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// PublishReport writes the run report message, keyed by run ID.
func (p *Publisher) PublishReport(ctx context.Context, runID string, report models.Report) error {
	payload, err := json.Marshal(reportEvent{RunID: runID, Kind: "report", Report: report})
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(runID),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	return p.writer.WriteMessages(ctx, msg)
}
