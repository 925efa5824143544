package config

import (
	"fmt"
	"os"
)

const (
	defaultRegion  = "us-east-1"
	defaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	defaultPort    = "8080"
)

// Config is the process-wide configuration, read from the environment once
// at startup and passed by reference into the adapters. Request handlers
// never read the environment directly.
type Config struct {
	Port   string
	AWS    AWSConfig
	Gemini GeminiConfig
}

type AWSConfig struct {
	Region          string
	KnowledgeBaseID string
	ModelID         string
}

type GeminiConfig struct {
	APIKey string
}

// FromEnv reads the configuration and fails fast when the selected provider
// is missing its required settings.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port: getenv("PORT", defaultPort),
		AWS: AWSConfig{
			Region:          getenv("AWS_REGION", defaultRegion),
			KnowledgeBaseID: os.Getenv("KNOWLEDGE_BASE_ID"),
			ModelID:         getenv("BEDROCK_MODEL_ID", defaultModelID),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
	}

	if !cfg.UseKnowledgeBase() && cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("no generation provider configured: set KNOWLEDGE_BASE_ID or GEMINI_API_KEY")
	}

	return cfg, nil
}

// UseKnowledgeBase reports whether the knowledge-base-backed provider is
// configured; otherwise the direct Gemini generator is used.
func (c *Config) UseKnowledgeBase() bool {
	return c.AWS.KnowledgeBaseID != ""
}

// ModelArn returns the fully-qualified foundation-model identifier for the
// configured region.
func (a AWSConfig) ModelArn() string {
	return fmt.Sprintf("arn:aws:bedrock:%s::foundation-model/%s", a.Region, a.ModelID)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
