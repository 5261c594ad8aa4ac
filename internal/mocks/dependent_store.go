package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// DependentStore is a mock type for the DependentStore type
type DependentStore struct {
	mock.Mock
}

// Delete provides a mock function with given fields: ctx, entity, ownerID
func (_m *DependentStore) Delete(ctx context.Context, entity model.DependentEntity, ownerID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, entity, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.DependentEntity, uuid.UUID) (int64, error)); ok {
		return rf(ctx, entity, ownerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.DependentEntity, uuid.UUID) int64); ok {
		r0 = rf(ctx, entity, ownerID)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.DependentEntity, uuid.UUID) error); ok {
		r1 = rf(ctx, entity, ownerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Detach provides a mock function with given fields: ctx, entity, ownerID
func (_m *DependentStore) Detach(ctx context.Context, entity model.DependentEntity, ownerID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, entity, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for Detach")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.DependentEntity, uuid.UUID) (int64, error)); ok {
		return rf(ctx, entity, ownerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.DependentEntity, uuid.UUID) int64); ok {
		r0 = rf(ctx, entity, ownerID)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.DependentEntity, uuid.UUID) error); ok {
		r1 = rf(ctx, entity, ownerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewDependentStore creates a new instance of DependentStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewDependentStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *DependentStore {
	mock := &DependentStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
