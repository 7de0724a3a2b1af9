package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"content-server/internal/config"
	"content-server/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// CompletionClient генерирует структурированный контент по типу задачи и запросу пользователя.
// Complete никогда не возвращает ошибку: любой сбой превращается в fallback-документ.
// Выполняется ровно одна попытка, без повторов.
type CompletionClient interface {
	Complete(ctx context.Context, taskType, prompt string) models.Completion
}

// NewCompletionClient создает клиент в зависимости от AI_CLIENT_TYPE.
func NewCompletionClient(cfg *config.Config, logger *zap.Logger) (CompletionClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case config.AIClientOpenAI:
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		if cfg.AIBaseURL != "" {
			openaiConfig.BaseURL = cfg.AIBaseURL
		}
		openaiConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}

		logger.Info("OpenAI client created",
			zap.String("base_url", openaiConfig.BaseURL),
			zap.String("model", cfg.AIModel),
			zap.Duration("timeout", cfg.AITimeout),
		)
		tokens := newTokenEstimator(logger)
		tokens.Warm(cfg.AIModel)
		return &openAIClient{
			client:  openaigo.NewClientWithConfig(openaiConfig),
			model:   cfg.AIModel,
			timeout: cfg.AITimeout,
			tokens:  tokens,
			logger:  logger.Named("OpenAIClient"),
		}, nil
	case config.AIClientOllama:
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}
}

// withTimeout ограничивает запрос таймаутом клиента, если он задан.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
