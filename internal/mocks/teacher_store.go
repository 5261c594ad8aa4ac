package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// TeacherStore is a mock type for the TeacherStore type
type TeacherStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, link
func (_m *TeacherStore) Create(ctx context.Context, link model.TeacherLink) (model.TeacherLink, error) {
	ret := _m.Called(ctx, link)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 model.TeacherLink
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.TeacherLink) (model.TeacherLink, error)); ok {
		return rf(ctx, link)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.TeacherLink) model.TeacherLink); ok {
		r0 = rf(ctx, link)
	} else {
		r0 = ret.Get(0).(model.TeacherLink)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.TeacherLink) error); ok {
		r1 = rf(ctx, link)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, id
func (_m *TeacherStore) Delete(ctx context.Context, id uuid.UUID) error {
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

// GetByProfileID provides a mock function with given fields: ctx, profileID
func (_m *TeacherStore) GetByProfileID(ctx context.Context, profileID uuid.UUID) (model.TeacherLink, error) {
	ret := _m.Called(ctx, profileID)

	if len(ret) == 0 {
		panic("no return value specified for GetByProfileID")
	}

	var r0 model.TeacherLink
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.TeacherLink, error)); ok {
		return rf(ctx, profileID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.TeacherLink); ok {
		r0 = rf(ctx, profileID)
	} else {
		r0 = ret.Get(0).(model.TeacherLink)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, profileID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateSchool provides a mock function with given fields: ctx, profileID, schoolID
func (_m *TeacherStore) UpdateSchool(ctx context.Context, profileID uuid.UUID, schoolID int64) error {
	ret := _m.Called(ctx, profileID, schoolID)

	if len(ret) == 0 {
		panic("no return value specified for UpdateSchool")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int64) error); ok {
		r0 = rf(ctx, profileID, schoolID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewTeacherStore creates a new instance of TeacherStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTeacherStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TeacherStore {
	mock := &TeacherStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
