// Package app wires the generation pipeline from configuration. It is shared
// by the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"
	"io"

	"mcq-creator/internal/adapter"
	"mcq-creator/internal/adapter/document"
	"mcq-creator/internal/adapter/llm"
	"mcq-creator/internal/adapter/quizgen"
	"mcq-creator/internal/cache"
	"mcq-creator/internal/config"
	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"
	"mcq-creator/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewQuizService loads the response template, builds the model and the
// generation chain, and returns the controller. A missing or invalid
// template is an error.
func NewQuizService(cfg *config.Config, c domain.Cache, usageOut io.Writer) (service.QuizService, error) {
	tmpl, err := config.LoadResponseTemplate(cfg.Quiz.ResponseTemplatePath)
	if err != nil {
		return nil, err
	}

	model, err := llm.NewModel(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm model: %w", err)
	}

	generator, err := quizgen.NewLangChainQuizGenerator(model, cfg.LLM.Temperature)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz pipeline initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("template", cfg.Quiz.ResponseTemplatePath))

	results := service.NewQuizResultStore(c, cfg.Quiz.ResultTTL)
	return service.NewQuizService(document.NewReader(), generator, tmpl, results, usageOut), nil
}

// ConnectCache returns a redis backed cache, or nil when redis is not
// configured or unreachable. The returned client must be closed by the caller.
func ConnectCache(ctx context.Context, cfg config.RedisConfig) (domain.Cache, *redis.Client) {
	if cfg.Address == "" {
		logger.Get().Info("Redis address not configured, running without result cache")
		return nil, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Get().Warn("Redis unavailable, running without result cache", zap.Error(err))
		return nil, nil
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return adapter.NewRedisCache(client), client
}
