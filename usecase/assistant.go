package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

// NoAnswerText replaces an empty generation result so a 200 never carries an
// empty message.
const NoAnswerText = "I couldn't generate a response. Please try again."

var (
	ErrNoMessages = errors.New("messages are required")
	ErrNoUserTurn = errors.New("no user message found")
)

// AssistantService answers one conversation at a time: it picks the latest
// user turn, hands it to the generation provider, and normalizes the result.
// It holds no per-session state.
type AssistantService struct {
	generator domain.AnswerGenerator
}

func NewAssistantService(gen domain.AnswerGenerator) *AssistantService {
	return &AssistantService{generator: gen}
}

func (s *AssistantService) Answer(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return domain.ChatResponse{}, ErrNoMessages
	}

	turn, ok := latestUserTurn(req.Messages)
	if !ok {
		return domain.ChatResponse{}, ErrNoUserTurn
	}

	// The query goes to the provider verbatim; retrieval relevance depends
	// on the user's own phrasing.
	answer, err := s.generator.Answer(ctx, turn.Content)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("generating answer: %w", err)
	}

	text := answer.Text
	if text == "" {
		text = NoAnswerText
	}

	return domain.ChatResponse{
		Message:   text,
		Citations: answer.Citations,
	}, nil
}

func latestUserTurn(turns []domain.Turn) (domain.Turn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.UserRole {
			return turns[i], true
		}
	}
	return domain.Turn{}, false
}
