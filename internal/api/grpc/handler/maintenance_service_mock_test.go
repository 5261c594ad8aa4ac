package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// MockMaintenanceService is a mock type for the MaintenanceService type
type MockMaintenanceService struct {
	mock.Mock
}

// CheckEmailConflict provides a mock function with given fields: ctx, email
func (_m *MockMaintenanceService) CheckEmailConflict(ctx context.Context, email string) (service.EmailConflict, error) {
	ret := _m.Called(ctx, email)

	if len(ret) == 0 {
		panic("no return value specified for CheckEmailConflict")
	}

	var r0 service.EmailConflict
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (service.EmailConflict, error)); ok {
		return rf(ctx, email)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) service.EmailConflict); ok {
		r0 = rf(ctx, email)
	} else {
		r0 = ret.Get(0).(service.EmailConflict)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// OrphanIdentities provides a mock function with given fields: ctx
func (_m *MockMaintenanceService) OrphanIdentities(ctx context.Context) ([]model.Identity, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for OrphanIdentities")
	}

	var r0 []model.Identity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.Identity, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.Identity); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Identity)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RegisteredEmails provides a mock function with given fields: ctx
func (_m *MockMaintenanceService) RegisteredEmails(ctx context.Context) ([]string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for RegisteredEmails")
	}

	var r0 []string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]string, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []string); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RemoveOrphanIdentities provides a mock function with given fields: ctx, dryRun
func (_m *MockMaintenanceService) RemoveOrphanIdentities(ctx context.Context, dryRun bool) (service.OrphanCleanup, error) {
	ret := _m.Called(ctx, dryRun)

	if len(ret) == 0 {
		panic("no return value specified for RemoveOrphanIdentities")
	}

	var r0 service.OrphanCleanup
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, bool) (service.OrphanCleanup, error)); ok {
		return rf(ctx, dryRun)
	}
	if rf, ok := ret.Get(0).(func(context.Context, bool) service.OrphanCleanup); ok {
		r0 = rf(ctx, dryRun)
	} else {
		r0 = ret.Get(0).(service.OrphanCleanup)
	}

	if rf, ok := ret.Get(1).(func(context.Context, bool) error); ok {
		r1 = rf(ctx, dryRun)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockMaintenanceService creates a new instance of MockMaintenanceService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockMaintenanceService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMaintenanceService {
	mock := &MockMaintenanceService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
