package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// MockUserService is a mock type for the UserService type
type MockUserService struct {
	mock.Mock
}

// Avatar provides a mock function with given fields: ctx, id
func (_m *MockUserService) Avatar(ctx context.Context, id uuid.UUID) (service.AvatarObject, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Avatar")
	}

	var r0 service.AvatarObject
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (service.AvatarObject, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) service.AvatarObject); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(service.AvatarObject)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Create provides a mock function with given fields: ctx, params
func (_m *MockUserService) Create(ctx context.Context, params service.CreateParams) (service.CreateResult, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 service.CreateResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, service.CreateParams) (service.CreateResult, error)); ok {
		return rf(ctx, params)
	}
	if rf, ok := ret.Get(0).(func(context.Context, service.CreateParams) service.CreateResult); ok {
		r0 = rf(ctx, params)
	} else {
		r0 = ret.Get(0).(service.CreateResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, service.CreateParams) error); ok {
		r1 = rf(ctx, params)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockUserService) Delete(ctx context.Context, id uuid.UUID) (model.DeleteReport, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 model.DeleteReport
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.DeleteReport, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.DeleteReport); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(model.DeleteReport)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Get provides a mock function with given fields: ctx, id
func (_m *MockUserService) Get(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.Profile, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.Profile); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx
func (_m *MockUserService) List(ctx context.Context) ([]model.Profile, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.Profile, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.Profile); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Profile)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, id, params
func (_m *MockUserService) Update(ctx context.Context, id uuid.UUID, params service.UpdateParams) (model.Profile, error) {
	ret := _m.Called(ctx, id, params)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, service.UpdateParams) (model.Profile, error)); ok {
		return rf(ctx, id, params)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, service.UpdateParams) model.Profile); ok {
		r0 = rf(ctx, id, params)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, service.UpdateParams) error); ok {
		r1 = rf(ctx, id, params)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UploadAvatar provides a mock function with given fields: ctx, id, contentType, data
func (_m *MockUserService) UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, data []byte) (model.Profile, error) {
	ret := _m.Called(ctx, id, contentType, data)

	if len(ret) == 0 {
		panic("no return value specified for UploadAvatar")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, []byte) (model.Profile, error)); ok {
		return rf(ctx, id, contentType, data)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, []byte) model.Profile); ok {
		r0 = rf(ctx, id, contentType, data)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string, []byte) error); ok {
		r1 = rf(ctx, id, contentType, data)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockUserService creates a new instance of MockUserService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserService {
	mock := &MockUserService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
