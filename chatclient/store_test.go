package chatclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

func TestStoreAppendPreservesOrder(t *testing.T) {
	store := NewStore()

	first := newMessage(domain.UserRole, "hello")
	second := newMessage(domain.AssistantRole, "hi there")
	store.Append(first)
	store.Append(second)

	messages := store.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
	assert.False(t, messages[1].Timestamp.Before(messages[0].Timestamp))
}

func TestStoreResetNoArgsEmptiesLog(t *testing.T) {
	store := NewStore(newMessage(domain.AssistantRole, "welcome"))
	store.Append(newMessage(domain.UserRole, "hello"))
	store.setErr(errors.New("boom"))

	store.Reset()

	assert.Zero(t, store.Len())
	assert.NoError(t, store.Err())
}

func TestStoreResetRestoresInitial(t *testing.T) {
	initial := []domain.Message{
		newMessage(domain.AssistantRole, "welcome"),
		newMessage(domain.UserRole, "hi"),
	}
	store := NewStore()
	store.Append(newMessage(domain.UserRole, "other"))

	store.Reset(initial...)

	messages := store.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, initial[0].ID, messages[0].ID)
	assert.Equal(t, initial[1].ID, messages[1].ID)
}

func TestStoreMessagesReturnsSnapshot(t *testing.T) {
	store := NewStore(newMessage(domain.AssistantRole, "welcome"))

	snapshot := store.Messages()
	snapshot[0].Content = "tampered"
	store.Append(newMessage(domain.UserRole, "hello"))

	assert.Equal(t, "welcome", store.Messages()[0].Content)
	assert.Len(t, snapshot, 1)
}

func TestNewMessageIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		m := newMessage(domain.UserRole, "x")
		require.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}
