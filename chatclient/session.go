package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
	"github.com/MauricioIPastora/portfolio-assistant/utils/log"
)

const (
	// DefaultEndpoint is the chat endpoint used when none is configured.
	DefaultEndpoint = "/api/chat"

	// DefaultInitialMessage seeds the log as the assistant's greeting.
	DefaultInitialMessage = "Hi! I'm Mauricio's AI assistant. Ask me anything about his skills, projects, or experience!"

	// DefaultSendTimeout bounds each send; a timed-out send follows the
	// same path as any other transport failure.
	DefaultSendTimeout = 30 * time.Second

	// FallbackText is appended as the assistant turn when a send fails.
	// The underlying cause stays in Err, never in the visible log.
	FallbackText = "I'm sorry, I encountered an error. Please try again later."

	// NoAnswerText is appended when the server replies 200 with an empty
	// message, which the contract treats as no-answer rather than failure.
	NoAnswerText = "I don't have an answer for that right now, but feel free to ask me something else."
)

type sendState int

const (
	stateIdle sendState = iota
	stateSending
)

// Options configures a Session. The zero value is usable; every field has a
// default.
type Options struct {
	// Endpoint overrides the request target.
	Endpoint string
	// InitialMessage overrides the seed assistant greeting.
	InitialMessage string
	// NoGreeting starts the log empty instead of seeding a greeting.
	NoGreeting bool
	// SystemPrompt, when set, is prepended to every wire request as a
	// system turn. It is never stored in the visible log.
	SystemPrompt string
	// Timeout bounds each send.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Broker, when set, receives message.sent / response.received /
	// send.failed events.
	Broker domain.EventBroker
}

// Session owns one conversation: the Store, the send pipeline, and the
// single-flight state. At most one send is in flight at a time; a Send
// while another is in flight is a silent no-op, not a queue.
type Session struct {
	store *Store

	mu    sync.Mutex
	state sendState

	endpoint     string
	systemPrompt string
	timeout      time.Duration
	httpClient   *http.Client
	broker       domain.EventBroker
	initial      []domain.Message
}

func NewSession(opts Options) *Session {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var initial []domain.Message
	if !opts.NoGreeting {
		greeting := opts.InitialMessage
		if greeting == "" {
			greeting = DefaultInitialMessage
		}
		initial = []domain.Message{newMessage(domain.AssistantRole, greeting)}
	}

	return &Session{
		store:        NewStore(initial...),
		endpoint:     endpoint,
		systemPrompt: opts.SystemPrompt,
		timeout:      timeout,
		httpClient:   httpClient,
		broker:       opts.Broker,
		initial:      initial,
	}
}

// Messages returns a snapshot of the conversation, oldest first.
func (s *Session) Messages() []domain.Message {
	return s.store.Messages()
}

// Loading reports whether a send is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateSending
}

// Err returns the cause of the last failed send, or nil. It exists for
// diagnostics; the visible log only ever carries the fixed fallback text.
func (s *Session) Err() error {
	return s.store.Err()
}

// Reset restores the log to the configured initial greeting and clears the
// recorded error.
func (s *Session) Reset() {
	s.store.Reset(s.initial...)
}

// Send validates and submits one user turn, reconciling exactly one outcome
// into the log: the assistant's reply on success, the fixed fallback text on
// any failure. Blank input, or a call while another send is in flight, does
// nothing.
func (s *Session) Send(ctx context.Context, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	if s.state != stateIdle {
		s.mu.Unlock()
		return
	}
	s.state = stateSending
	s.mu.Unlock()

	userMsg := newMessage(domain.UserRole, trimmed)
	s.store.Append(userMsg)
	s.store.setErr(nil)
	s.publish(ctx, domain.MessageSentKey, userMsg)

	// Snapshot after the user turn is in, so the request carries the full
	// conversation including it.
	payload := s.buildRequest()

	resp, err := s.dispatch(ctx, payload)

	var reply domain.Message
	if err != nil {
		s.store.setErr(err)
		reply = newMessage(domain.AssistantRole, FallbackText)
		s.store.Append(reply)
		s.publish(ctx, domain.SendFailedKey, reply)
		log.WithCtx(ctx).Warn("send failed", zap.Error(err))
	} else {
		text := resp.Message
		if text == "" {
			text = NoAnswerText
		}
		reply = newMessage(domain.AssistantRole, text)
		s.store.Append(reply)
		s.publish(ctx, domain.ResponseReceivedKey, reply)
	}

	// The reply is already in the log, so no observer sees an idle
	// session with an unresolved turn.
	s.mu.Lock()
	s.state = stateIdle
	s.mu.Unlock()
}

func (s *Session) buildRequest() domain.ChatRequest {
	messages := s.store.Messages()

	turns := make([]domain.Turn, 0, len(messages)+1)
	if s.systemPrompt != "" {
		turns = append(turns, domain.Turn{Role: domain.SystemRole, Content: s.systemPrompt})
	}
	for _, m := range messages {
		turns = append(turns, domain.Turn{Role: m.Role, Content: m.Content})
	}

	return domain.ChatRequest{Messages: turns}
}

func (s *Session) dispatch(ctx context.Context, payload domain.ChatRequest) (domain.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("posting chat request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, res.Body)
		return domain.ChatResponse{}, fmt.Errorf("chat endpoint returned status %d", res.StatusCode)
	}

	var out domain.ChatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return domain.ChatResponse{}, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// publish is best effort; a full or closed broker never affects the send.
func (s *Session) publish(ctx context.Context, routingKey string, m domain.Message) {
	if s.broker == nil {
		return
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.broker.Publish(ctx, domain.ChatTopic, routingKey, payload); err != nil {
		log.WithCtx(ctx).Debug("event publish dropped",
			zap.String("routing_key", routingKey),
			zap.Error(err))
	}
}
