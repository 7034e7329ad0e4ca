package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mcq-creator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, template string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Response.json")
	if template != "" {
		require.NoError(t, os.WriteFile(path, []byte(template), 0o600))
	}
	return &config.Config{
		LLM:  config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-test", Temperature: 0.5},
		Quiz: config.QuizConfig{ResponseTemplatePath: path},
	}
}

func TestNewQuizService(t *testing.T) {
	svc, err := NewQuizService(testConfig(t, `{"1":{"mcq":"q","options":{"a":"x"},"correct":"a"}}`), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNewQuizService_MissingTemplateIsFatal(t *testing.T) {
	_, err := NewQuizService(testConfig(t, ""), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read response template")
}

func TestNewQuizService_InvalidTemplateIsFatal(t *testing.T) {
	_, err := NewQuizService(testConfig(t, `{"1": `), nil, nil)
	assert.Error(t, err)
}

func TestNewQuizService_BadProvider(t *testing.T) {
	cfg := testConfig(t, `{}`)
	cfg.LLM.Provider = "palm"
	_, err := NewQuizService(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create llm model")
}

func TestConnectCache_NotConfigured(t *testing.T) {
	c, client := ConnectCache(context.Background(), config.RedisConfig{})
	assert.Nil(t, c)
	assert.Nil(t, client)
}
