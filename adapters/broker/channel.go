package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
	"github.com/MauricioIPastora/portfolio-assistant/utils/log"
)

// ChannelEventBroker implements EventBroker using Go channels. It is an
// in-process broker; subscribers on the same topic/routing key share one
// channel, so each event is consumed once.
type ChannelEventBroker struct {
	topics map[string]chan domain.Event
	mu     sync.Mutex
	closed bool
}

// NewChannelEventBroker creates a new channel-based event broker
func NewChannelEventBroker() *ChannelEventBroker {
	return &ChannelEventBroker{
		topics: make(map[string]chan domain.Event),
	}
}

func makeKey(topic, routingKey string) string {
	return topic + ":" + routingKey
}

func (b *ChannelEventBroker) channel(topic, routingKey string) (chan domain.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("event broker is closed")
	}

	key := makeKey(topic, routingKey)
	ch, ok := b.topics[key]
	if !ok {
		ch = make(chan domain.Event, 100)
		b.topics[key] = ch
	}
	return ch, nil
}

// Publish sends an event to a specific topic and routing key. Delivery is
// non-blocking; a full channel is an error, not a stall.
func (b *ChannelEventBroker) Publish(ctx context.Context, topic string, routingKey string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch, err := b.channel(topic, routingKey)
	if err != nil {
		return err
	}

	event := domain.Event{
		Topic:      topic,
		RoutingKey: routingKey,
		Payload:    payload,
		Timestamp:  time.Now(),
	}

	select {
	case ch <- event:
		log.WithCtx(ctx).Debug("event published",
			zap.String("topic", topic),
			zap.String("routing_key", routingKey),
			zap.Int("payload_size", len(payload)))
		return nil
	default:
		return fmt.Errorf("topic channel is full: %s:%s", topic, routingKey)
	}
}

// Subscribe listens for events on a specific topic and routing key
func (b *ChannelEventBroker) Subscribe(ctx context.Context, topic string, routingKey string) (<-chan domain.Event, error) {
	ch, err := b.channel(topic, routingKey)
	if err != nil {
		return nil, err
	}

	log.WithCtx(ctx).Info("subscribed to topic",
		zap.String("topic", topic),
		zap.String("routing_key", routingKey))
	return ch, nil
}

// Close closes the broker and all topic channels
func (b *ChannelEventBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, ch := range b.topics {
		close(ch)
	}
	b.topics = make(map[string]chan domain.Event)

	log.With().Info("event broker closed")
	return nil
}

// TopicCount returns the number of active topics (useful for monitoring)
func (b *ChannelEventBroker) TopicCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics)
}

// IsClosed returns whether the broker is closed
func (b *ChannelEventBroker) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
