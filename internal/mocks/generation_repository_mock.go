package mocks

import (
	"context"

	"content-server/internal/models"
	"content-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockGenerationRepository is a mock type for the GenerationRepository type
type MockGenerationRepository struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *MockGenerationRepository) List(ctx context.Context) ([]models.Generation, error) {
	ret := _m.Called(ctx)

	var r0 []models.Generation
	if rf, ok := ret.Get(0).(func(context.Context) []models.Generation); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Generation)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, gen
func (_m *MockGenerationRepository) Create(ctx context.Context, gen models.NewGeneration) (*models.Generation, error) {
	ret := _m.Called(ctx, gen)

	var r0 *models.Generation
	if rf, ok := ret.Get(0).(func(context.Context, models.NewGeneration) *models.Generation); ok {
		r0 = rf(ctx, gen)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Generation)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockGenerationRepository) GetByID(ctx context.Context, id int64) (*models.Generation, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Generation
	if rf, ok := ret.Get(0).(func(context.Context, int64) *models.Generation); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Generation)
	}

	return r0, ret.Error(1)
}

// CountByType provides a mock function with given fields: ctx
func (_m *MockGenerationRepository) CountByType(ctx context.Context) ([]models.TypeCount, error) {
	ret := _m.Called(ctx)

	var r0 []models.TypeCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.TypeCount)
	}

	return r0, ret.Error(1)
}

// NewMockGenerationRepository creates a new instance of MockGenerationRepository.
func NewMockGenerationRepository(t interface {
	mock.TestingT
	Helper()
}) *MockGenerationRepository {
	m := &MockGenerationRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.GenerationRepository = (*MockGenerationRepository)(nil)
