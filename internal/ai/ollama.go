package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"content-server/internal/config"
	"content-server/internal/models"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// ollamaClient реализует CompletionClient с использованием ollama/api.
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ CompletionClient = (*ollamaClient)(nil)

// newOllamaClient создает клиент Ollama. AI_BASE_URL указывает на сервер Ollama
// (например, http://localhost:11434); суффикс /v1 отбрасывается.
func newOllamaClient(cfg *config.Config, logger *zap.Logger) (CompletionClient, error) {
	baseURL := strings.TrimSuffix(cfg.AIBaseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", baseURL, err)
	}

	logger.Info("Ollama client created",
		zap.String("base_url", baseURL),
		zap.String("model", cfg.AIModel),
		zap.Duration("timeout", cfg.AITimeout),
	)
	return &ollamaClient{
		client:  api.NewClient(parsedURL, &http.Client{Timeout: cfg.AITimeout}),
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, taskType, prompt string) models.Completion {
	instructions := BuildInstructions(taskType, prompt)
	log := c.logger.With(zap.String("type", taskType), zap.String("model", c.model))

	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: instructions.System},
			{Role: "user", Content: instructions.User},
		},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
	}

	requestCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Debug("Sending completion request", zap.Int("user_prompt_bytes", len(instructions.User)))

	var (
		resp     api.ChatResponse
		received bool
	)
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		received = true
		return nil
	})
	duration := time.Since(startTime)

	var (
		result models.Completion
		usage  usageInfo
	)
	switch {
	case err != nil:
		result = failureFromError(err, c.timeout)
	case !received:
		result = models.FailedCompletion(models.FailureEmptyResponse, "AI service returned no message")
	default:
		usage = usageInfo{PromptTokens: resp.PromptEvalCount, CompletionTokens: resp.EvalCount}
		result = parseDocument(resp.Message.Content)
	}

	observe(c.model, statusLabel(result), duration.Seconds(), usage)
	if result.Failed() {
		log.Warn("Completion failed, using fallback content",
			zap.Duration("duration", duration),
			zap.String("kind", result.Failure.Kind),
			zap.String("details", result.Failure.Details),
		)
		return result
	}

	log.Info("Completion received",
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
	)
	return result
}
