package model

import "github.com/google/uuid"

// TokenVerifier validates provider access tokens and returns the identity
// they were issued to.
type TokenVerifier interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}
