package ai

import (
	"context"
	"time"

	"content-server/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient реализует CompletionClient с использованием go-openai.
type openAIClient struct {
	client  *openaigo.Client
	model   string
	timeout time.Duration
	tokens  *tokenEstimator
	logger  *zap.Logger
}

var _ CompletionClient = (*openAIClient)(nil)

func (c *openAIClient) Complete(ctx context.Context, taskType, prompt string) models.Completion {
	instructions := BuildInstructions(taskType, prompt)
	log := c.logger.With(zap.String("type", taskType), zap.String("model", c.model))

	requestCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Debug("Sending completion request", zap.Int("user_prompt_bytes", len(instructions.User)))

	resp, err := c.client.CreateChatCompletion(requestCtx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: instructions.System},
			{Role: openaigo.ChatMessageRoleUser, Content: instructions.User},
		},
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	duration := time.Since(startTime)

	var (
		result models.Completion
		usage  usageInfo
	)
	switch {
	case err != nil:
		result = failureFromError(err, c.timeout)
	case len(resp.Choices) == 0:
		result = models.FailedCompletion(models.FailureEmptyResponse, "AI service returned no choices")
	default:
		usage = usageInfo{PromptTokens: resp.Usage.PromptTokens, CompletionTokens: resp.Usage.CompletionTokens}
		if usage.PromptTokens == 0 {
			usage.PromptTokens = c.tokens.Estimate(c.model, instructions.System, instructions.User)
		}
		result = parseDocument(resp.Choices[0].Message.Content)
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
