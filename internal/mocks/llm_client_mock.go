package mocks

import (
	"context"

	"house-modeler/internal/llm"

	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock type for the llm.Client type
type MockLLMClient struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, req
func (_m *MockLLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	ret := _m.Called(ctx, req)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, llm.Request) string); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, llm.Request) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Name provides a mock function with no fields
func (_m *MockLLMClient) Name() string {
	ret := _m.Called()
	return ret.String(0)
}

// NewMockLLMClient creates a new instance of MockLLMClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLLMClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLLMClient {
	m := &MockLLMClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ llm.Client = (*MockLLMClient)(nil)
