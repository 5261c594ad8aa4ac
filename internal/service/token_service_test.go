package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinculopei/vinculo-server/internal/mocks"
)

func TestTokenService_GetIdentityID(t *testing.T) {
	verifier := mocks.NewTokenVerifier(t)

	id := uuid.New()
	verifier.On("ParseAccessToken", "access").Return(id, nil).Once()

	svc := NewTokenService(verifier)

	got, err := svc.GetIdentityID(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenService_GetIdentityID_Invalid(t *testing.T) {
	verifier := mocks.NewTokenVerifier(t)

	verifier.On("ParseAccessToken", "expired").Return(uuid.Nil, assert.AnError).Once()

	svc := NewTokenService(verifier)

	_, err := svc.GetIdentityID(context.Background(), "expired")
	require.ErrorIs(t, err, assert.AnError)
}
