package repository

import (
	"context"
	"errors"
	"fmt"

	"content-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	listGenerationsQuery = `
		SELECT id, type, prompt, content, created_at
		FROM generations
		ORDER BY created_at ASC, id ASC
	`
	createGenerationQuery = `
		INSERT INTO generations (type, prompt, content, failed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, type, prompt, content, created_at
	`
	getGenerationByIDQuery = `
		SELECT id, type, prompt, content, created_at
		FROM generations
		WHERE id = $1
	`
	countGenerationsByTypeQuery = `
		SELECT type,
		       count(*) AS total,
		       count(*) FILTER (WHERE failed) AS failed
		FROM generations
		GROUP BY type
		ORDER BY type
	`
)

type pgGenerationRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgGenerationRepository создает репозиторий генераций поверх PostgreSQL.
func NewPgGenerationRepository(db DBTX, logger *zap.Logger) GenerationRepository {
	return &pgGenerationRepository{
		db:     db,
		logger: logger.Named("PgGenerationRepo"),
	}
}

var _ GenerationRepository = (*pgGenerationRepository)(nil)

func (r *pgGenerationRepository) List(ctx context.Context) ([]models.Generation, error) {
	generations := make([]models.Generation, 0)
	if err := pgxscan.Select(ctx, r.db, &generations, listGenerationsQuery); err != nil {
		r.logger.Error("Failed to list generations", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка генераций: %w: %w", models.ErrPersistence, err)
	}
	r.logger.Debug("Generations listed", zap.Int("count", len(generations)))
	return generations, nil
}

func (r *pgGenerationRepository) Create(ctx context.Context, gen models.NewGeneration) (*models.Generation, error) {
	var created models.Generation
	// content уже сериализован, передаем как текст JSON
	err := pgxscan.Get(ctx, r.db, &created, createGenerationQuery, gen.Type, gen.Prompt, string(gen.Content), gen.Failed)
	if err != nil {
		r.logger.Error("Failed to insert generation",
			zap.String("type", gen.Type),
			zap.Error(err),
		)
		return nil, fmt.Errorf("ошибка сохранения генерации: %w: %w", models.ErrPersistence, err)
	}
	r.logger.Info("Generation stored", zap.Int64("id", created.ID), zap.String("type", created.Type))
	return &created, nil
}

func (r *pgGenerationRepository) GetByID(ctx context.Context, id int64) (*models.Generation, error) {
	log := r.logger.With(zap.Int64("id", id))

	var gen models.Generation
	err := pgxscan.Get(ctx, r.db, &gen, getGenerationByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("Generation not found")
			return nil, nil
		}
		log.Error("Failed to get generation by id", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения генерации %d: %w: %w", id, models.ErrPersistence, err)
	}
	return &gen, nil
}

func (r *pgGenerationRepository) CountByType(ctx context.Context) ([]models.TypeCount, error) {
	counts := make([]models.TypeCount, 0)
	if err := pgxscan.Select(ctx, r.db, &counts, countGenerationsByTypeQuery); err != nil {
		r.logger.Error("Failed to count generations by type", zap.Error(err))
		return nil, fmt.Errorf("ошибка подсчета генераций: %w: %w", models.ErrPersistence, err)
	}
	return counts, nil
}
