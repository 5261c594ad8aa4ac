package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/model"
)

// Claims are the access token claims issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWT verifies provider-issued access tokens signed with the shared HMAC
// secret.
type JWT struct {
	secretKey string
	audience  string
}

var _ model.TokenVerifier = (*JWT)(nil)

// NewJWT creates a verifier. An empty audience disables the audience check.
func NewJWT(secretKey, audience string) *JWT {
	return &JWT{secretKey: secretKey, audience: audience}
}

// ParseAccessToken validates an access token and returns the identity it was issued to.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, errors.New("access token is invalid")
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("access token subject is not an identity id: %w", err)
	}
	return identityID, nil
}
