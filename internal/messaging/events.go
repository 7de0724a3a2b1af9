package messaging

import (
	"context"
	"time"

	"content-server/internal/models"
)

// EventGenerationCreated - тип события о сохранении новой генерации.
const EventGenerationCreated = "generation.created"

// GenerationCreatedEvent публикуется после успешного сохранения записи.
type GenerationCreatedEvent struct {
	Event        string     `json:"event"`
	GenerationID int64      `json:"generationId"`
	Type         string     `json:"type"`
	Failed       bool       `json:"failed"`
	FailureKind  string     `json:"failureKind,omitempty"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// NewGenerationCreatedEvent собирает событие по сохраненной записи и результату генерации.
func NewGenerationCreatedEvent(gen *models.Generation, completion models.Completion) GenerationCreatedEvent {
	event := GenerationCreatedEvent{
		Event:        EventGenerationCreated,
		GenerationID: gen.ID,
		Type:         gen.Type,
		Failed:       completion.Failed(),
		CreatedAt:    gen.CreatedAt,
	}
	if completion.Failed() {
		event.FailureKind = completion.Failure.Kind
	}
	return event
}

// EventPublisher отправляет события о генерациях во внешние системы.
type EventPublisher interface {
	PublishGenerationCreated(ctx context.Context, event GenerationCreatedEvent) error
}

// NoopPublisher ничего не отправляет. Используется, когда RABBITMQ_URL не задан.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishGenerationCreated(context.Context, GenerationCreatedEvent) error {
	return nil
}
