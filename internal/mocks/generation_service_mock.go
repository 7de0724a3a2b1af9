package mocks

import (
	"context"

	"content-server/internal/models"
	"content-server/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockGenerationService is a mock type for the GenerationService type
type MockGenerationService struct {
	mock.Mock
}

// ListGenerations provides a mock function with given fields: ctx
func (_m *MockGenerationService) ListGenerations(ctx context.Context) ([]models.Generation, error) {
	ret := _m.Called(ctx)

	var r0 []models.Generation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Generation)
	}

	return r0, ret.Error(1)
}

// GetGeneration provides a mock function with given fields: ctx, id
func (_m *MockGenerationService) GetGeneration(ctx context.Context, id int64) (*models.Generation, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Generation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Generation)
	}

	return r0, ret.Error(1)
}

// CreateGeneration provides a mock function with given fields: ctx, input
func (_m *MockGenerationService) CreateGeneration(ctx context.Context, input models.CreateGenerationInput) (*models.Generation, error) {
	ret := _m.Called(ctx, input)

	var r0 *models.Generation
	if rf, ok := ret.Get(0).(func(context.Context, models.CreateGenerationInput) *models.Generation); ok {
		r0 = rf(ctx, input)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Generation)
	}

	return r0, ret.Error(1)
}

// GetStats provides a mock function with given fields: ctx
func (_m *MockGenerationService) GetStats(ctx context.Context) (*models.GenerationStats, error) {
	ret := _m.Called(ctx)

	var r0 *models.GenerationStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.GenerationStats)
	}

	return r0, ret.Error(1)
}

// NewMockGenerationService creates a new instance of MockGenerationService.
func NewMockGenerationService(t interface {
	mock.TestingT
	Helper()
}) *MockGenerationService {
	m := &MockGenerationService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.GenerationService = (*MockGenerationService)(nil)
