package mocks

import (
	"context"

	"content-server/internal/ai"
	"content-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient is a mock type for the CompletionClient type
type MockCompletionClient struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, taskType, prompt
func (_m *MockCompletionClient) Complete(ctx context.Context, taskType string, prompt string) models.Completion {
	ret := _m.Called(ctx, taskType, prompt)

	var r0 models.Completion
	if rf, ok := ret.Get(0).(func(context.Context, string, string) models.Completion); ok {
		r0 = rf(ctx, taskType, prompt)
	} else {
		r0 = ret.Get(0).(models.Completion)
	}

	return r0
}

// NewMockCompletionClient creates a new instance of MockCompletionClient. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockCompletionClient(t interface {
	mock.TestingT
	Helper()
}) *MockCompletionClient {
	m := &MockCompletionClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.CompletionClient = (*MockCompletionClient)(nil)
