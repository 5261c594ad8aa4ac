package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/model"
)

// TokenService resolves the identity behind a provider access token.
type TokenService struct {
	verifier model.TokenVerifier
}

func NewTokenService(verifier model.TokenVerifier) *TokenService {
	return &TokenService{verifier: verifier}
}

func (s *TokenService) GetIdentityID(_ context.Context, token string) (uuid.UUID, error) {
	return s.verifier.ParseAccessToken(token)
}
