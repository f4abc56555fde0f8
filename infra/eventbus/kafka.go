package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// KafkaEventBus publishes each event type to its own topic and consumes it
// with one reader per registered type.
type KafkaEventBus struct {
	brokers     []string
	groupID     string
	topicPrefix string
	writer      *kafka.Writer
	dialer      *kafka.Dialer
	logger      *slog.Logger

	handlersMtx sync.RWMutex
	handlers    map[events.EventType][]eventbus.HandlerFunc

	readersMtx sync.Mutex
	readers    map[events.EventType]*kafka.Reader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithKafka creates a Kafka-backed event bus and checks the first broker is reachable.
func NewWithKafka(cfg config.Kafka, logger *slog.Logger) (*KafkaEventBus, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = "piol"
	}
	prefix := strings.TrimSpace(cfg.TopicPrefix)
	if prefix == "" {
		prefix = "piol"
	}

	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.Dial("tcp", brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: connection failed: %w", err)
	}
	_ = conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	b := &KafkaEventBus{
		brokers:     brokers,
		groupID:     groupID,
		topicPrefix: prefix,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.Hash{},
		},
		dialer:   dialer,
		logger:   logger.With("bus", "kafka"),
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		readers:  make(map[events.EventType]*kafka.Reader),
		ctx:      ctx,
		cancel:   cancel,
	}
	b.logger.Info("Kafka event bus initialized", "group_id", groupID, "brokers", brokers, "topic_prefix", prefix)
	return b, nil
}

// Emit publishes an event to its topic.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	raw, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: %w", err)
	}
	eventType := events.EventType(event.Type())
	msg := kafka.Message{
		Topic: topicNameFor(b.topicPrefix, eventType),
		Key:   []byte(eventType.String()),
		Value: raw,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	return nil
}

// Register adds a handler and starts the topic reader for the type on first use.
func (b *KafkaEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.handlersMtx.Unlock()

	b.readersMtx.Lock()
	defer b.readersMtx.Unlock()
	if _, exists := b.readers[eventType]; exists {
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		Topic:       topicNameFor(b.topicPrefix, eventType),
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		Dialer:      b.dialer,
	})
	b.readers[eventType] = reader

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consumeLoop(eventType, reader)
	}()
}

func (b *KafkaEventBus) consumeLoop(eventType events.EventType, reader *kafka.Reader) {
	for {
		msg, err := reader.FetchMessage(b.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || b.ctx.Err() != nil {
				return
			}
			b.logger.Error("kafka consume error", "error", err, "event_type", eventType)
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if err := b.process(eventType, msg); err != nil {
			// leave the offset uncommitted so the message is redelivered
			b.logger.Error("kafka message processing failed; will retry",
				"error", err, "topic", msg.Topic, "offset", msg.Offset)
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if err := reader.CommitMessages(b.ctx, msg); err != nil {
			b.logger.Error("kafka commit error", "error", err, "topic", msg.Topic, "offset", msg.Offset)
		}
	}
}

// process runs the handlers; failed deliveries go to the DLQ topic. It only
// returns an error when the DLQ write itself fails.
func (b *KafkaEventBus) process(eventType events.EventType, msg kafka.Message) error {
	_, evt, err := decodeEnvelope(msg.Value)
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "topic", msg.Topic, "offset", msg.Offset)
		return b.publishToDLQ(eventType, msg.Value)
	}

	b.handlersMtx.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.handlersMtx.RUnlock()

	failed := false
	for _, handler := range handlers {
		if err := handler(b.ctx, evt); err != nil {
			b.logger.Error("handler error", "error", err, "event_type", eventType)
			failed = true
		}
	}
	if failed {
		return b.publishToDLQ(eventType, msg.Value)
	}
	return nil
}

func (b *KafkaEventBus) publishToDLQ(eventType events.EventType, raw []byte) error {
	dlqTopic := dlqTopicNameFor(b.topicPrefix, eventType)
	if err := b.writer.WriteMessages(b.ctx, kafka.Message{
		Topic: dlqTopic,
		Key:   []byte(eventType.String()),
		Value: raw,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("kafka event bus: dlq publish failed: %w", err)
	}
	b.logger.Warn("message sent to DLQ", "event_type", eventType, "dlq_topic", dlqTopic)
	return nil
}

// Close stops the readers and flushes the writer.
func (b *KafkaEventBus) Close() error {
	b.cancel()
	b.readersMtx.Lock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	b.readersMtx.Unlock()
	b.wg.Wait()
	return b.writer.Close()
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
