package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"content-server/internal/models"

	"github.com/ollama/ollama/api"
	openaigo "github.com/sashabaranov/go-openai"
)

// failureFromError переводит ошибку вызова модели в fallback-результат.
func failureFromError(err error, timeout time.Duration) models.Completion {
	var (
		netErr       net.Error
		apiErr       *openaigo.APIError
		requestErr   *openaigo.RequestError
		ollamaStatus api.StatusError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return models.FailedCompletion(models.FailureTimeout,
			fmt.Sprintf("AI request timed out after %v: %v", timeout, err))
	case errors.As(err, &apiErr):
		return models.FailedCompletion(models.FailureUpstream,
			fmt.Sprintf("AI service returned status %d: %s", apiErr.HTTPStatusCode, apiErr.Message))
	case errors.As(err, &requestErr):
		return models.FailedCompletion(models.FailureUpstream,
			fmt.Sprintf("AI service returned status %d: %v", requestErr.HTTPStatusCode, requestErr.Err))
	case errors.As(err, &ollamaStatus):
		return models.FailedCompletion(models.FailureUpstream,
			fmt.Sprintf("AI service returned status %d: %s", ollamaStatus.StatusCode, ollamaStatus.ErrorMessage))
	case errors.As(err, &netErr):
		return models.FailedCompletion(models.FailureNetwork,
			fmt.Sprintf("AI service is unreachable: %v", err))
	case errors.Is(err, context.Canceled):
		return models.FailedCompletion(models.FailureNetwork,
			fmt.Sprintf("AI request was cancelled: %v", err))
	default:
		return models.FailedCompletion(models.FailureClient,
			fmt.Sprintf("AI request failed: %v", err))
	}
}

// statusLabel возвращает значение метки status для метрик запросов.
func statusLabel(result models.Completion) string {
	if result.Failed() {
		return "error_" + result.Failure.Kind
	}
	return "success"
}
