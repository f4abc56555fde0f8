package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBus delivers events through one Redis stream per event type,
// consumed by a consumer group so each event is handled once per group.
type RedisEventBus struct {
	client    *redis.Client
	keyPrefix string
	group     string
	consumer  string
	block     time.Duration
	logger    *slog.Logger

	mu        sync.RWMutex
	handlers  map[events.EventType][]eventbus.HandlerFunc
	consuming map[events.EventType]bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis connects to Redis and returns a bus whose consumers join group.
func NewWithRedis(cfg config.Redis, group string, logger *slog.Logger) (*RedisEventBus, error) {
	if cfg.URL == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: url and group are required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	host, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		group:     group,
		consumer:  fmt.Sprintf("%s-%d", host, os.Getpid()),
		block:     2 * time.Second,
		logger:    logger.With("bus", "redis"),
		handlers:  make(map[events.EventType][]eventbus.HandlerFunc),
		consuming: make(map[events.EventType]bool),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Emit appends the event to its type's stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	raw, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	eventType := events.EventType(event.Type())
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamNameFor(b.keyPrefix, eventType),
		Values: map[string]any{"event": string(raw)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", eventType)
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", eventType)
	return nil
}

// Register adds a handler and starts the stream consumer for the type on first use.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	start := !b.consuming[eventType]
	b.consuming[eventType] = true
	b.mu.Unlock()

	if !start {
		return
	}
	stream := streamNameFor(b.keyPrefix, eventType)
	group := groupNameFor(b.group, eventType)
	err := b.client.XGroupCreateMkStream(b.ctx, stream, group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(eventType, stream, group)
	}()
	b.logger.Info("handler registered", "event_type", eventType, "stream", stream, "group", group)
}

func (b *RedisEventBus) consume(eventType events.EventType, stream, group string) {
	for {
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: b.consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    b.block,
		}).Result()
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "stream", stream)
				time.Sleep(time.Second)
			}
			continue
		}
		for _, s := range res {
			for _, msg := range s.Messages {
				b.handleMessage(eventType, msg)
				if err := b.client.XAck(b.ctx, stream, group, msg.ID).Err(); err != nil {
					b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
				}
			}
		}
	}
}

func (b *RedisEventBus) handleMessage(eventType events.EventType, msg redis.XMessage) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.logger.Error("message without event field", "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}
	_, evt, err := decodeEnvelope([]byte(raw))
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if !b.run(eventType, evt, handler) {
			b.pushToDLQ(eventType, msg.Values)
		}
	}
}

func (b *RedisEventBus) run(eventType events.EventType, evt events.Event, handler eventbus.HandlerFunc) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", eventType)
			ok = false
		}
	}()
	if err := handler(b.ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", eventType)
		return false
	}
	return true
}

// pushToDLQ copies the raw message to the type's DLQ stream for inspection or replay.
func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any) {
	dlq := dlqStreamName(b.keyPrefix, eventType)
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// Close stops the consumers and closes the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
