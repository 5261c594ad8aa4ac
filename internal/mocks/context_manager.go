package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// ContextManager is a mock type for the ContextManager type
type ContextManager struct {
	mock.Mock
}

// GetIdentityIDFromContext provides a mock function with given fields: ctx
func (_m *ContextManager) GetIdentityIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetIdentityIDFromContext")
	}

	var r0 uuid.UUID
	var r1 bool
	if rf, ok := ret.Get(0).(func(context.Context) (uuid.UUID, bool)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) uuid.UUID); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(uuid.UUID)
	}

	if rf, ok := ret.Get(1).(func(context.Context) bool); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// GetProfileFromContext provides a mock function with given fields: ctx
func (_m *ContextManager) GetProfileFromContext(ctx context.Context) (model.Profile, bool) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetProfileFromContext")
	}

	var r0 model.Profile
	var r1 bool
	if rf, ok := ret.Get(0).(func(context.Context) (model.Profile, bool)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) model.Profile); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context) bool); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// SetIdentityIDToContext provides a mock function with given fields: ctx, identityID
func (_m *ContextManager) SetIdentityIDToContext(ctx context.Context, identityID uuid.UUID) context.Context {
	ret := _m.Called(ctx, identityID)

	if len(ret) == 0 {
		panic("no return value specified for SetIdentityIDToContext")
	}

	var r0 context.Context
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) context.Context); ok {
		r0 = rf(ctx, identityID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(context.Context)
		}
	}

	return r0
}

// SetProfileToContext provides a mock function with given fields: ctx, profile
func (_m *ContextManager) SetProfileToContext(ctx context.Context, profile model.Profile) context.Context {
	ret := _m.Called(ctx, profile)

	if len(ret) == 0 {
		panic("no return value specified for SetProfileToContext")
	}

	var r0 context.Context
	if rf, ok := ret.Get(0).(func(context.Context, model.Profile) context.Context); ok {
		r0 = rf(ctx, profile)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(context.Context)
		}
	}

	return r0
}

// NewContextManager creates a new instance of ContextManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	mock := &ContextManager{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
