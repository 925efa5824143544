package domain

import "time"

type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	SystemRole    Role = "system"
)

// Message is one stored conversation turn. IDs and timestamps exist for
// display and ordering only; they never cross the wire.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is the wire projection of a Message.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. Messages are ordered oldest
// first, exactly as accumulated by the client.
type ChatRequest struct {
	Messages []Turn `json:"messages"`
}

// ChatResponse carries the assistant's whole answer. Message is never empty
// on a 200; the server substitutes a fixed no-answer text when generation
// returns nothing.
type ChatResponse struct {
	Message   string     `json:"message"`
	Citations []Citation `json:"citations,omitempty"`
}

// ErrorResponse is the body of any non-2xx reply from the chat endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Citation ties a span of generated text back to the retrieved sources that
// grounded it.
type Citation struct {
	Text       string      `json:"text,omitempty"`
	References []Reference `json:"references,omitempty"`
}

// Reference is one retrieved knowledge-base document excerpt.
type Reference struct {
	Snippet string `json:"snippet,omitempty"`
	URI     string `json:"uri,omitempty"`
}
