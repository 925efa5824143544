package domain

import "context"

// AnswerGenerator abstracts the grounded-generation provider.
type AnswerGenerator interface {
	// Answer takes the user's query and returns the model's reply, with
	// whatever source citations the provider produced.
	Answer(ctx context.Context, query string) (Answer, error)
}

type Answer struct {
	Text      string
	Citations []Citation
}
