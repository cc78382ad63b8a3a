package mocks

import (
	"context"

	"house-modeler/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockSceneGenerator is a mock for anything with a Generate(ctx, prompt) (model.Scene, error) method.
type MockSceneGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt
func (_m *MockSceneGenerator) Generate(ctx context.Context, prompt string) (model.Scene, error) {
	ret := _m.Called(ctx, prompt)

	var r0 model.Scene
	if rf, ok := ret.Get(0).(func(context.Context, string) model.Scene); ok {
		r0 = rf(ctx, prompt)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(model.Scene)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, prompt)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockSceneGenerator creates a new instance of MockSceneGenerator and asserts its expectations on cleanup.
func NewMockSceneGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSceneGenerator {
	m := &MockSceneGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
