//go:build integration

package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"content-server/internal/database"
	"content-server/internal/models"
	"content-server/internal/repository"

	"github.com/docker/docker/client"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type GenerationRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	repo        repository.GenerationRepository
	logger      *zap.Logger
}

func (s *GenerationRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("content_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	dsn, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	require.NoError(s.T(), database.ApplyMigrations(dsn, s.logger), "Failed to apply migrations")

	s.pool, err = pgxpool.New(s.ctx, dsn)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.pool.Ping(s.ctx))

	s.repo = repository.NewPgGenerationRepository(s.pool, s.logger)
}

func (s *GenerationRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *GenerationRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE generations RESTART IDENTITY")
	require.NoError(s.T(), err)
}

func TestGenerationRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(GenerationRepositorySuite))
}

func (s *GenerationRepositorySuite) create(genType, prompt, content string) *models.Generation {
	gen, err := s.repo.Create(s.ctx, models.NewGeneration{
		Type:    genType,
		Prompt:  prompt,
		Content: json.RawMessage(content),
	})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), gen)
	return gen
}

func (s *GenerationRepositorySuite) createFallback(genType, prompt, kind string) *models.Generation {
	gen, err := s.repo.Create(s.ctx, models.NewGeneration{
		Type:    genType,
		Prompt:  prompt,
		Content: models.FailedCompletion(kind, "request failed").Content(),
		Failed:  true,
	})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), gen)
	return gen
}

func (s *GenerationRepositorySuite) TestListEmpty() {
	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *GenerationRepositorySuite) TestCreateAssignsIDAndTimestamp() {
	first := s.create("seo", "rank for espresso machines", `{"headline": "Best Espresso Machines"}`)
	second := s.create("email", "spring sale", `{"subject": "Sale"}`)

	s.Equal(int64(1), first.ID)
	s.Greater(second.ID, first.ID)
	s.Require().NotNil(first.CreatedAt)
	s.Equal("seo", first.Type)
	s.Equal("rank for espresso machines", first.Prompt)
	s.JSONEq(`{"headline": "Best Espresso Machines"}`, string(first.Content))
}

func (s *GenerationRepositorySuite) TestGetByIDReturnsStoredContent() {
	created := s.create("ad", "coffee ad", `{"text": "Wake up", "nested": {"a": [1, 2]}}`)

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(created.ID, got.ID)
	s.Equal(string(created.Content), string(got.Content))
	s.True(created.CreatedAt.Equal(*got.CreatedAt))
}

func (s *GenerationRepositorySuite) TestGetByIDAbsent() {
	got, err := s.repo.GetByID(s.ctx, 9999)
	s.NoError(err)
	s.Nil(got)
}

func (s *GenerationRepositorySuite) TestListOrderedByCreation() {
	for i := 0; i < 5; i++ {
		s.create("social", fmt.Sprintf("post %d", i), `{}`)
	}

	before, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(before, 5)
	for i := 1; i < len(before); i++ {
		s.False(before[i].CreatedAt.Before(*before[i-1].CreatedAt), "list must be ordered by createdAt")
	}

	s.create("social", "late post", `{}`)

	after, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(after, 6)
	for i := range before {
		s.Equal(before[i].ID, after[i].ID, "previously listed items keep their relative order")
	}
}

func (s *GenerationRepositorySuite) TestConcurrentCreatesGetUniqueIDs() {
	const workers = 10
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			gen, err := s.repo.Create(s.ctx, models.NewGeneration{
				Type: "content", Prompt: fmt.Sprintf("article %d", i), Content: json.RawMessage(`{}`),
			})
			if assert.NoError(s.T(), err) {
				ids <- gen.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		s.False(seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	s.Len(seen, workers)
}

func (s *GenerationRepositorySuite) TestCountByType() {
	s.create("seo", "a", `{"headline": "x"}`)
	s.createFallback("seo", "b", models.FailureTimeout)
	s.create("email", "c", `{"subject": "y"}`)
	// Успешный документ с ключами error и details не считается сбоем
	s.create("email", "d", `{"error": "404 page copy", "details": "friendly text"}`)

	counts, err := s.repo.CountByType(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.TypeCount{
		{Type: "email", Total: 2, Failed: 0},
		{Type: "seo", Total: 2, Failed: 1},
	}, counts)
}

func (s *GenerationRepositorySuite) TestCreateFailsWhenStoreUnavailable() {
	closedPool, err := pgxpool.New(s.ctx, s.pool.Config().ConnString())
	s.Require().NoError(err)
	closedPool.Close()

	repo := repository.NewPgGenerationRepository(closedPool, s.logger)
	_, err = repo.Create(s.ctx, models.NewGeneration{Type: "seo", Prompt: "p", Content: json.RawMessage(`{}`)})
	s.Require().Error(err)
	s.ErrorIs(err, models.ErrPersistence)
}
