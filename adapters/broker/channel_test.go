package broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

func TestPublishSubscribeRoundTrip(t *testing.T) {
	b := NewChannelEventBroker()
	defer b.Close()

	ctx := context.Background()
	events, err := b.Subscribe(ctx, domain.ChatTopic, domain.MessageSentKey)
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, domain.ChatTopic, domain.MessageSentKey, []byte("hello")))

	event := <-events
	assert.Equal(t, domain.ChatTopic, event.Topic)
	assert.Equal(t, domain.MessageSentKey, event.RoutingKey)
	assert.Equal(t, []byte("hello"), event.Payload)
	assert.False(t, event.Timestamp.IsZero())
}

func TestRoutingKeysAreIsolated(t *testing.T) {
	b := NewChannelEventBroker()
	defer b.Close()

	ctx := context.Background()
	sent, err := b.Subscribe(ctx, domain.ChatTopic, domain.MessageSentKey)
	require.NoError(t, err)
	failed, err := b.Subscribe(ctx, domain.ChatTopic, domain.SendFailedKey)
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, domain.ChatTopic, domain.SendFailedKey, []byte("boom")))

	select {
	case event := <-failed:
		assert.Equal(t, []byte("boom"), event.Payload)
	default:
		t.Fatal("expected event on send.failed channel")
	}
	select {
	case <-sent:
		t.Fatal("message.sent channel should be empty")
	default:
	}
}

func TestPublishFullChannelErrors(t *testing.T) {
	b := NewChannelEventBroker()
	defer b.Close()

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		require.NoError(t, b.Publish(ctx, "t", "k", []byte("x")))
	}

	assert.Error(t, b.Publish(ctx, "t", "k", []byte("overflow")))
}

func TestPublishCancelledContextErrors(t *testing.T) {
	b := NewChannelEventBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Publish(ctx, domain.ChatTopic, domain.MessageSentKey, []byte("late"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCloseRejectsFurtherUse(t *testing.T) {
	b := NewChannelEventBroker()
	require.NoError(t, b.Close())

	assert.True(t, b.IsClosed())
	assert.Error(t, b.Publish(context.Background(), "t", "k", nil))
	_, err := b.Subscribe(context.Background(), "t", "k")
	assert.Error(t, err)

	// Idempotent close.
	assert.NoError(t, b.Close())
}

func TestTopicCount(t *testing.T) {
	b := NewChannelEventBroker()
	defer b.Close()

	ctx := context.Background()
	_, err := b.Subscribe(ctx, domain.ChatTopic, domain.MessageSentKey)
	require.NoError(t, err)
	_, err = b.Subscribe(ctx, domain.ChatTopic, domain.ResponseReceivedKey)
	require.NoError(t, err)

	assert.Equal(t, 2, b.TopicCount())
}
