package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresAProvider(t *testing.T) {
	t.Setenv("KNOWLEDGE_BASE_ID", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("KNOWLEDGE_BASE_ID", "KB123456")
	t.Setenv("AWS_REGION", "")
	t.Setenv("BEDROCK_MODEL_ID", "")
	t.Setenv("PORT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.AWS.ModelID)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.UseKnowledgeBase())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("KNOWLEDGE_BASE_ID", "KB123456")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
	t.Setenv("PORT", "9090")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "9090", cfg.Port)
}

func TestFromEnvGeminiFallback(t *testing.T) {
	t.Setenv("KNOWLEDGE_BASE_ID", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.UseKnowledgeBase())
}

func TestModelArnIsRegionQualified(t *testing.T) {
	aws := AWSConfig{
		Region:  "us-west-2",
		ModelID: "anthropic.claude-3-sonnet-20240229-v1:0",
	}

	assert.Equal(t,
		"arn:aws:bedrock:us-west-2::foundation-model/anthropic.claude-3-sonnet-20240229-v1:0",
		aws.ModelArn())
}
