package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// IdentityProvider is a mock type for the IdentityProvider type
type IdentityProvider struct {
	mock.Mock
}

// Isolated provides a mock function
func (_m *IdentityProvider) Isolated() model.IdentityProvider {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Isolated")
	}

	var r0 model.IdentityProvider
	if rf, ok := ret.Get(0).(func() model.IdentityProvider); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.IdentityProvider)
		}
	}

	return r0
}

// SignInWithPassword provides a mock function with given fields: ctx, email, password
func (_m *IdentityProvider) SignInWithPassword(ctx context.Context, email string, password string) (model.Session, error) {
	ret := _m.Called(ctx, email, password)

	if len(ret) == 0 {
		panic("no return value specified for SignInWithPassword")
	}

	var r0 model.Session
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (model.Session, error)); ok {
		return rf(ctx, email, password)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) model.Session); ok {
		r0 = rf(ctx, email, password)
	} else {
		r0 = ret.Get(0).(model.Session)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, email, password)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SignOut provides a mock function with given fields: ctx
func (_m *IdentityProvider) SignOut(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for SignOut")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SignUp provides a mock function with given fields: ctx, params
func (_m *IdentityProvider) SignUp(ctx context.Context, params model.SignUpParams) (model.Identity, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for SignUp")
	}

	var r0 model.Identity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.SignUpParams) (model.Identity, error)); ok {
		return rf(ctx, params)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.SignUpParams) model.Identity); ok {
		r0 = rf(ctx, params)
	} else {
		r0 = ret.Get(0).(model.Identity)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.SignUpParams) error); ok {
		r1 = rf(ctx, params)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// WithSession provides a mock function with given fields: s
func (_m *IdentityProvider) WithSession(s model.Session) model.IdentityProvider {
	ret := _m.Called(s)

	if len(ret) == 0 {
		panic("no return value specified for WithSession")
	}

	var r0 model.IdentityProvider
	if rf, ok := ret.Get(0).(func(model.Session) model.IdentityProvider); ok {
		r0 = rf(s)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.IdentityProvider)
		}
	}

	return r0
}

// NewIdentityProvider creates a new instance of IdentityProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewIdentityProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityProvider {
	mock := &IdentityProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
