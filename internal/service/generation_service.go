package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"content-server/internal/ai"
	"content-server/internal/messaging"
	"content-server/internal/models"
	"content-server/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
)

// GenerationService управляет созданием и чтением генераций.
type GenerationService interface {
	// ListGenerations возвращает все записи в порядке создания.
	ListGenerations(ctx context.Context) ([]models.Generation, error)
	// GetGeneration возвращает (nil, nil), если записи нет.
	GetGeneration(ctx context.Context, id int64) (*models.Generation, error)
	// CreateGeneration проверяет ввод, вызывает модель и сохраняет результат.
	// Сбой генерации не является ошибкой: он сохраняется как content.
	CreateGeneration(ctx context.Context, input models.CreateGenerationInput) (*models.Generation, error)
	// GetStats возвращает агрегированную статистику по генерациям.
	GetStats(ctx context.Context) (*models.GenerationStats, error)
}

type generationServiceImpl struct {
	repo      repository.GenerationRepository
	ai        ai.CompletionClient
	publisher messaging.EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewGenerationService создает сервис генераций.
// publisher может быть nil, тогда события не отправляются.
func NewGenerationService(
	repo repository.GenerationRepository,
	completionClient ai.CompletionClient,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) GenerationService {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &generationServiceImpl{
		repo:      repo,
		ai:        completionClient,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger.Named("GenerationService"),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank отклоняет строки из одних пробелов
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *generationServiceImpl) ListGenerations(ctx context.Context) ([]models.Generation, error) {
	generations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return generations, nil
}

func (s *generationServiceImpl) GetGeneration(ctx context.Context, id int64) (*models.Generation, error) {
	gen, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation %d: %w", id, err)
	}
	return gen, nil
}

func (s *generationServiceImpl) CreateGeneration(ctx context.Context, input models.CreateGenerationInput) (*models.Generation, error) {
	if err := s.validateInput(input); err != nil {
		s.logger.Info("Generation request rejected", zap.Error(err))
		return nil, err
	}

	log := s.logger.With(zap.String("type", input.Type))
	if !models.TaskType(input.Type).IsKnown() {
		log.Warn("Unknown task type, passing through as free text")
	}

	// Генерацию ограничивает только таймаут клиента, не отмена входящего запроса
	completion := s.ai.Complete(context.WithoutCancel(ctx), input.Type, input.Prompt)
	outcome := generationOutcomeSuccess
	if completion.Failed() {
		outcome = generationOutcomeFailed
		log.Warn("Generation failed, storing fallback content",
			zap.String("kind", completion.Failure.Kind),
			zap.String("details", completion.Failure.Details),
		)
	}

	gen, err := s.repo.Create(context.WithoutCancel(ctx), models.NewGeneration{
		Type:    input.Type,
		Prompt:  input.Prompt,
		Content: completion.Content(),
		Failed:  completion.Failed(),
	})
	if err != nil {
		generationsCreatedTotal.WithLabelValues(typeLabel(input.Type), generationOutcomePersistenceError).Inc()
		log.Error("Failed to persist generation", zap.Error(err))
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}
	generationsCreatedTotal.WithLabelValues(typeLabel(input.Type), outcome).Inc()

	event := messaging.NewGenerationCreatedEvent(gen, completion)
	if err := s.publisher.PublishGenerationCreated(context.WithoutCancel(ctx), event); err != nil {
		log.Warn("Failed to publish generation event", zap.Int64("generation_id", gen.ID), zap.Error(err))
	}

	log.Info("Generation created", zap.Int64("generation_id", gen.ID), zap.Bool("failed", completion.Failed()))
	return gen, nil
}

func (s *generationServiceImpl) GetStats(ctx context.Context) (*models.GenerationStats, error) {
	counts, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation stats: %w", err)
	}

	stats := &models.GenerationStats{ByType: make(map[string]int64, len(counts))}
	for _, c := range counts {
		stats.Total += c.Total
		stats.Failed += c.Failed
		stats.ByType[c.Type] += c.Total
	}
	return stats, nil
}

// validateInput возвращает ошибку, оборачивающую models.ErrValidation.
func (s *generationServiceImpl) validateInput(input models.CreateGenerationInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "notblank":
			messages = append(messages, fmt.Sprintf("%s must not be blank", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(messages, "; "))
}
