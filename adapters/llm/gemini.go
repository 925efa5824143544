package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/MauricioIPastora/portfolio-assistant/config"
	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

// Framing for the direct generator, which has no retrieved context to lean
// on. Same persona as the knowledge-base template.
const directPrompt = `You are Mauricio Pastora's AI assistant on his personal portfolio website.
You help visitors learn about Mauricio's skills, projects, work experience, and certifications.
Be friendly, professional, and concise in your responses. If you don't have the specific
information, say so and offer to help with something else.

User question: %s`

// GeminiGenerator answers queries by direct generation, without retrieval.
// It is the development-time provider for when no knowledge base is
// configured; it never produces citations.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (domain.AnswerGenerator, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:      cfg.APIKey,
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Answer(ctx context.Context, query string) (domain.Answer, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash-001",
		genai.Text(fmt.Sprintf(directPrompt, query)),
		nil,
	)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate content: %w", err)
	}

	return domain.Answer{Text: resp.Text()}, nil
}
