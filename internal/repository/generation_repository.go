package repository

import (
	"context"

	"content-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - общий интерфейс для *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GenerationRepository определяет методы для работы с записями генераций.
// Записи только добавляются: обновления и удаления не поддерживаются.
type GenerationRepository interface {
	// List возвращает все записи в порядке создания (старые первыми).
	// Пустая таблица дает пустой срез, а не ошибку.
	List(ctx context.Context) ([]models.Generation, error)
	// Create вставляет запись; id и created_at назначает БД.
	Create(ctx context.Context, gen models.NewGeneration) (*models.Generation, error)
	// GetByID возвращает (nil, nil), если записи с таким id нет.
	GetByID(ctx context.Context, id int64) (*models.Generation, error)
	// CountByType возвращает количество записей (и неудачных генераций) по типам.
	CountByType(ctx context.Context) ([]models.TypeCount, error)
}
