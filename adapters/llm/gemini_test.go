package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MauricioIPastora/portfolio-assistant/config"
)

func TestNewGeminiGeneratorUsesConfiguredKey(t *testing.T) {
	// With the ambient key variables cleared, construction can only
	// succeed through the injected config.
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	gen, err := NewGeminiGenerator(context.Background(), config.GeminiConfig{APIKey: "test-key"})
	require.NoError(t, err)
	require.NotNil(t, gen)
}
