package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// ProfileStore is a mock type for the ProfileStore type
type ProfileStore struct {
	mock.Mock
}

// Count provides a mock function with given fields: ctx
func (_m *ProfileStore) Count(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Count")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (int, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) int); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Create provides a mock function with given fields: ctx, profile
func (_m *ProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	ret := _m.Called(ctx, profile)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Profile) (model.Profile, error)); ok {
		return rf(ctx, profile)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.Profile) model.Profile); ok {
		r0 = rf(ctx, profile)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.Profile) error); ok {
		r1 = rf(ctx, profile)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByEmail provides a mock function with given fields: ctx, email
func (_m *ProfileStore) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	ret := _m.Called(ctx, email)

	if len(ret) == 0 {
		panic("no return value specified for GetByEmail")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (model.Profile, error)); ok {
		return rf(ctx, email)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) model.Profile); ok {
		r0 = rf(ctx, email)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetByID")
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

// GetByIdentityID provides a mock function with given fields: ctx, identityID
func (_m *ProfileStore) GetByIdentityID(ctx context.Context, identityID uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, identityID)

	if len(ret) == 0 {
		panic("no return value specified for GetByIdentityID")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.Profile, error)); ok {
		return rf(ctx, identityID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.Profile); ok {
		r0 = rf(ctx, identityID)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, identityID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx
func (_m *ProfileStore) List(ctx context.Context) ([]model.Profile, error) {
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

// Update provides a mock function with given fields: ctx, id, patch
func (_m *ProfileStore) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.Profile, error) {
	ret := _m.Called(ctx, id, patch)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 model.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, model.ProfilePatch) (model.Profile, error)); ok {
		return rf(ctx, id, patch)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, model.ProfilePatch) model.Profile); ok {
		r0 = rf(ctx, id, patch)
	} else {
		r0 = ret.Get(0).(model.Profile)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, model.ProfilePatch) error); ok {
		r1 = rf(ctx, id, patch)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewProfileStore creates a new instance of ProfileStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProfileStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileStore {
	mock := &ProfileStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
