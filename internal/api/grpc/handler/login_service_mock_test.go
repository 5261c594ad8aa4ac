package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// MockLoginService is a mock type for the LoginService type
type MockLoginService struct {
	mock.Mock
}

// Authenticate provides a mock function with given fields: ctx, email, password
func (_m *MockLoginService) Authenticate(ctx context.Context, email string, password string) (service.LoginResult, error) {
	ret := _m.Called(ctx, email, password)

	if len(ret) == 0 {
		panic("no return value specified for Authenticate")
	}

	var r0 service.LoginResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (service.LoginResult, error)); ok {
		return rf(ctx, email, password)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) service.LoginResult); ok {
		r0 = rf(ctx, email, password)
	} else {
		r0 = ret.Get(0).(service.LoginResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, email, password)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Logout provides a mock function with given fields: ctx, accessToken
func (_m *MockLoginService) Logout(ctx context.Context, accessToken string) error {
	ret := _m.Called(ctx, accessToken)

	if len(ret) == 0 {
		panic("no return value specified for Logout")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, accessToken)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Me provides a mock function with given fields: ctx, identityID
func (_m *MockLoginService) Me(ctx context.Context, identityID uuid.UUID) (service.Account, error) {
	ret := _m.Called(ctx, identityID)

	if len(ret) == 0 {
		panic("no return value specified for Me")
	}

	var r0 service.Account
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (service.Account, error)); ok {
		return rf(ctx, identityID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) service.Account); ok {
		r0 = rf(ctx, identityID)
	} else {
		r0 = ret.Get(0).(service.Account)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, identityID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockLoginService creates a new instance of MockLoginService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLoginService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoginService {
	mock := &MockLoginService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
