package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
	"github.com/vinculopei/vinculo-server/internal/testutil"
)

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	svc := NewMockLoginService(t)
	identityID := uuid.New()
	expires := time.Now().Add(time.Hour).UTC()

	svc.On("Authenticate", mock.Anything, "admin@test.com", "abcdef").Return(service.LoginResult{
		Session: model.Session{AccessToken: "at", RefreshToken: "rt", ExpiresAt: expires},
		Account: service.Account{
			Profile: model.Profile{
				ID:         uuid.New(),
				IdentityID: &identityID,
				Email:      "admin@test.com",
				Role:       model.RoleAdmin,
				Status:     model.StatusActive,
			},
			Permissions: model.PermissionsFor(model.RoleAdmin),
		},
	}, nil).Once()

	h := NewAuth(svc, testutil.MakeNoopLogger())
	out, err := h.Login(context.Background(), &pb.LoginRequest{Email: "admin@test.com", Password: "abcdef"})
	require.NoError(t, err)
	assert.Equal(t, "at", out.Session.AccessToken)
	assert.Equal(t, expires, out.Session.ExpiresAt)
	assert.Equal(t, identityID.String(), out.Profile.IdentityID)
	assert.Equal(t, "Admin", out.Profile.Role)
	assert.True(t, out.Permissions.ViewSettings)
}

func TestAuth_Login_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "wrong password",
			err:      apierror.NewWrongPassword(),
			wantCode: codes.Unauthenticated,
			wantMsg:  apierror.NewWrongPassword().Message,
		},
		{
			name:     "unknown account",
			err:      apierror.NewUnknownAccount("instagram.com/edututorpei"),
			wantCode: codes.NotFound,
			wantMsg:  apierror.NewUnknownAccount("instagram.com/edututorpei").Message,
		},
		{
			name:     "inactive",
			err:      apierror.NewInactiveAccount(),
			wantCode: codes.PermissionDenied,
			wantMsg:  apierror.NewInactiveAccount().Message,
		},
		{
			name:     "provider message verbatim",
			err:      apierror.NewAuthenticationFailed("Email not confirmed", assert.AnError),
			wantCode: codes.Unauthenticated,
			wantMsg:  "Email not confirmed",
		},
		{
			name:     "provider unreachable",
			err:      apierror.NewProviderUnavailable(errors.New("dial tcp 10.0.0.7:9999: connect: connection refused")),
			wantCode: codes.Unavailable,
			wantMsg:  "identity service is unavailable, try again later",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewMockLoginService(t)
			svc.On("Authenticate", mock.Anything, "ghost@x.com", "abcdef").Return(service.LoginResult{}, tt.err).Once()

			h := NewAuth(svc, testutil.MakeNoopLogger())
			out, err := h.Login(context.Background(), &pb.LoginRequest{Email: "ghost@x.com", Password: "abcdef"})
			assert.Nil(t, out)

			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	t.Run("bearer token", func(t *testing.T) {
		t.Parallel()

		svc := NewMockLoginService(t)
		svc.On("Logout", mock.Anything, "user-token").Return(nil).Once()

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer user-token"))
		_, err := NewAuth(svc, testutil.MakeNoopLogger()).Logout(ctx, &pb.Empty{})
		assert.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		svc := NewMockLoginService(t)

		_, err := NewAuth(svc, testutil.MakeNoopLogger()).Logout(context.Background(), &pb.Empty{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()

		svc := NewMockLoginService(t)
		svc.On("Logout", mock.Anything, "user-token").Return(apierror.NewInternal(assert.AnError)).Once()

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer user-token"))
		_, err := NewAuth(svc, testutil.MakeNoopLogger()).Logout(ctx, &pb.Empty{})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}
