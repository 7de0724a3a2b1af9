package handler

import "content-server/internal/models"

const (
	notFoundMessage      = "Not found"
	internalErrorMessage = "Internal Server Error"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreateGenerationRequest - тело POST /api/generations.
// Поля id, content и createdAt, если переданы, игнорируются.
type CreateGenerationRequest struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

func (r CreateGenerationRequest) toInput() models.CreateGenerationInput {
	return models.CreateGenerationInput{Type: r.Type, Prompt: r.Prompt}
}
