package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/usecase"
)

// Producer defines the interface for producing messages to Kafka.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaForwarder is a hub listener that mirrors notifications onto a Kafka
// topic for out-of-process consumers. Produce failures are logged and never
// reach the publisher.
type KafkaForwarder struct {
	client  Producer
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaForwarder(client Producer, topic string, logger *zap.Logger) *KafkaForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaForwarder{
		client:  client,
		topic:   topic,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

func (f *KafkaForwarder) Notify(n usecase.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		f.logger.Error("marshal notification", zap.Error(err))
		return
	}

	record := &kgo.Record{
		Topic: f.topic,
		Key:   []byte(n.OwnerID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		f.logger.Warn("kafka notification publish failed",
			zap.String("kind", string(n.Kind)), zap.Error(err))
	}
}

var _ Listener = (*KafkaForwarder)(nil)
