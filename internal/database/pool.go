package database

import (
	"context"
	"fmt"
	"time"

	"content-server/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

// NewPool создает пул соединений к PostgreSQL, повторяя подключение и ping
// до cfg.DBConnAttempts раз с паузой cfg.DBConnDelay.
func NewPool(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	log := logger.Named("Postgres")

	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.DBMaxConns)
	}
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	maxAttempts := cfg.DBConnAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	log.Info("Attempting to connect to PostgreSQL",
		zap.String("dsn", cfg.GetMaskedDSN()),
		zap.Int("max_attempts", maxAttempts),
		zap.Duration("retry_delay", cfg.DBConnDelay),
	)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := connect(ctx, poolConfig)
		if err == nil {
			log.Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		lastErr = err
		log.Warn("Postgres connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("postgres connect cancelled: %w", ctx.Err())
		case <-time.After(cfg.DBConnDelay):
		}
	}

	log.Error("Failed to connect to PostgreSQL after all retries", zap.Int("attempts", maxAttempts), zap.Error(lastErr))
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxAttempts, lastErr)
}

func connect(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("unable to create postgres connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err = pool.Ping(pingCtx)
	cancel()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping postgres database: %w", err)
	}
	return pool, nil
}
