package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated identity and the acting profile
// through request contexts.
type ContextManager interface {
	SetIdentityIDToContext(ctx context.Context, identityID uuid.UUID) context.Context
	GetIdentityIDFromContext(ctx context.Context) (uuid.UUID, bool)
	SetProfileToContext(ctx context.Context, profile Profile) context.Context
	GetProfileFromContext(ctx context.Context) (Profile, bool)
}
