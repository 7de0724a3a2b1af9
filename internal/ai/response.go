package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"content-server/internal/models"
)

const maxDetailsSnippet = 200

var fencedBlockRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// parseDocument разбирает текст ответа модели как JSON-документ.
// Пустой ответ (или null) дает пустой документ {}.
// Документ возвращается без изменений; из обертки ```json ... ``` он только извлекается.
func parseDocument(text string) models.Completion {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return models.SucceededCompletion(json.RawMessage(`{}`))
	}

	if doc, ok := extractJSON(trimmed); ok {
		return models.SucceededCompletion(doc)
	}

	return models.FailedCompletion(models.FailureInvalidResponse,
		fmt.Sprintf("model response is not valid JSON: %s", shorten(trimmed, maxDetailsSnippet)))
}

// extractJSON принимает либо весь текст как JSON, либо текст, целиком обернутый в ```json ... ```.
// Текст вокруг документа считается невалидным ответом.
func extractJSON(text string) (json.RawMessage, bool) {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), true
	}

	if matches := fencedBlockRegex.FindStringSubmatch(text); len(matches) > 1 {
		candidate := strings.TrimSpace(matches[1])
		if candidate != "" && json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	return nil, false
}

// shorten обрезает строку до maxLen рун, добавляя многоточие.
func shorten(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
