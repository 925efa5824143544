// Package chatclient manages one chat session against the assistant
// endpoint: the ordered message log, the single-flight send pipeline, and
// the nudge bubble shown while the panel is closed.
package chatclient

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

// Store is the append-only conversation log for one session. Messages are
// never mutated or reordered; only Reset replaces the sequence. It performs
// no I/O.
type Store struct {
	mu       sync.RWMutex
	messages []domain.Message
	err      error
}

func NewStore(initial ...domain.Message) *Store {
	s := &Store{}
	s.Reset(initial...)
	return s
}

// Append adds a message at the end of the log.
func (s *Store) Append(m domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// Reset replaces the log with the given initial sequence (empty when no
// arguments are passed) and clears any recorded error.
func (s *Store) Reset(initial ...domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]domain.Message(nil), initial...)
	s.err = nil
}

// Messages returns a snapshot copy of the log, oldest first.
func (s *Store) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Message(nil), s.messages...)
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Err returns the last send failure, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func newMessage(role domain.Role, content string) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
