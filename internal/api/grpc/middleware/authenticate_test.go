package middleware

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/vinculopei/vinculo-server/internal/mocks"
	"github.com/vinculopei/vinculo-server/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		mdAuthHeader     string
		callsTokenSvc    bool
		tokenSvcIdentity uuid.UUID
		tokenSvcErr      error
		wantErr          bool
	}{
		{
			name:         "missing authorization header",
			mdAuthHeader: "",
			wantErr:      true,
		},
		{
			name:         "wrong scheme",
			mdAuthHeader: "Basic dXNlcjpwYXNz",
			wantErr:      true,
		},
		{
			name:          "invalid token",
			mdAuthHeader:  "Bearer invalid",
			callsTokenSvc: true,
			tokenSvcErr:   assert.AnError,
			wantErr:       true,
		},
		{
			name:             "nil identity id from token",
			mdAuthHeader:     "Bearer token",
			callsTokenSvc:    true,
			tokenSvcIdentity: uuid.Nil,
			wantErr:          true,
		},
		{
			name:             "valid token",
			mdAuthHeader:     "Bearer token",
			callsTokenSvc:    true,
			tokenSvcIdentity: uuid.New(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)
			svc := mocks.NewTokenService(t)

			if tt.callsTokenSvc {
				svc.On("GetIdentityID", mock.Anything, mock.AnythingOfType("string")).Return(tt.tokenSvcIdentity, tt.tokenSvcErr)
			}
			if !tt.wantErr {
				cm.On("SetIdentityIDToContext", mock.Anything, tt.tokenSvcIdentity).Return(context.Background())
			}

			m := NewAuthenticate(svc, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
