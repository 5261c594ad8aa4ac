package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// IdentityAdmin is a mock type for the IdentityAdmin type
type IdentityAdmin struct {
	mock.Mock
}

// DeleteIdentity provides a mock function with given fields: ctx, id
func (_m *IdentityAdmin) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for DeleteIdentity")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListIdentities provides a mock function with given fields: ctx, page, perPage
func (_m *IdentityAdmin) ListIdentities(ctx context.Context, page int, perPage int) ([]model.Identity, error) {
	ret := _m.Called(ctx, page, perPage)

	if len(ret) == 0 {
		panic("no return value specified for ListIdentities")
	}

	var r0 []model.Identity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, int) ([]model.Identity, error)); ok {
		return rf(ctx, page, perPage)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, int) []model.Identity); ok {
		r0 = rf(ctx, page, perPage)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Identity)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, page, perPage)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewIdentityAdmin creates a new instance of IdentityAdmin. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewIdentityAdmin(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityAdmin {
	mock := &IdentityAdmin{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
