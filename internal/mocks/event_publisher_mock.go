package mocks

import (
	"context"

	"content-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// PublishGenerationCreated provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishGenerationCreated(ctx context.Context, event messaging.GenerationCreatedEvent) error {
	ret := _m.Called(ctx, event)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, messaging.GenerationCreatedEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockEventPublisher creates a new instance of MockEventPublisher.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Helper()
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ messaging.EventPublisher = (*MockEventPublisher)(nil)
