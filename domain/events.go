package domain

import (
	"context"
	"time"
)

// EventBroker defines the interface for publishing chat lifecycle events
type EventBroker interface {
	// Publish sends an event to a specific topic with a routing key
	Publish(ctx context.Context, topic string, routingKey string, payload []byte) error

	// Subscribe listens for events on a specific topic and routing key
	Subscribe(ctx context.Context, topic string, routingKey string) (<-chan Event, error)

	// Close closes the event broker
	Close() error
}

// Event represents an event received from the broker
type Event struct {
	Topic      string
	RoutingKey string
	Payload    []byte
	Timestamp  time.Time
}

// Chat session lifecycle events published by the client send pipeline.
const (
	ChatTopic = "chat"

	MessageSentKey      = "message.sent"
	ResponseReceivedKey = "response.received"
	SendFailedKey       = "send.failed"
)
