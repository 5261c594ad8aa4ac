package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Errors reported by identity provider clients. Provider responses are
// classified into these at the integration boundary.
var (
	ErrIdentityAlreadyRegistered = errors.New("identity already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrIdentityHookFailed        = errors.New("identity provider hook failed")
	ErrIdentityUnconfirmed       = errors.New("identity not confirmed")
	ErrIdentityProvider          = errors.New("identity provider error")
)

// ProviderMessage returns the message the identity provider reported for
// err. ok is false when err did not come from a provider response, such as
// a transport failure.
func ProviderMessage(err error) (msg string, ok bool) {
	var pm interface{ ProviderMessage() string }
	if errors.As(err, &pm) && pm.ProviderMessage() != "" {
		return pm.ProviderMessage(), true
	}
	return "", false
}

// IdentityProvider is a client of the hosted identity provider. Each
// instance owns its session storage.
type IdentityProvider interface {
	// SignUp creates an identity. The returned Identity may be populated
	// together with ErrIdentityHookFailed when the provider created the
	// identity but its post-creation hook failed.
	SignUp(ctx context.Context, params SignUpParams) (Identity, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context) error
	// Isolated returns a client with fresh, non-shared session storage.
	Isolated() IdentityProvider
	// WithSession returns an isolated client bound to s.
	WithSession(s Session) IdentityProvider
}

// IdentityAdmin exposes privileged identity operations. It is only
// available when a service-role key is configured.
type IdentityAdmin interface {
	ListIdentities(ctx context.Context, page, perPage int) ([]Identity, error)
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
}

// Identity is the provider's credential record.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Confirmed bool
	CreatedAt time.Time
}

// Session is an authenticated provider session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Identity     Identity
}

// Valid reports whether the session carries an access token.
func (s Session) Valid() bool {
	return s.AccessToken != ""
}

// SignUpParams describes a new identity. Metadata is stored by the provider
// alongside the identity.
type SignUpParams struct {
	Email    string
	Password string
	Metadata map[string]any
}
