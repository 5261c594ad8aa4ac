package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/vinculopei/vinculo-server/internal/model"
)

// identityIDKey is the incoming metadata key holding the authenticated
// identity id. Set overwrites any value sent by the client.
const identityIDKey string = "identity_id"

type profileKey struct{}

// Manager carries the authenticated identity and the acting profile through
// gRPC request contexts.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityIDToContext stores the identity id in the incoming metadata.
func (m *Manager) SetIdentityIDToContext(ctx context.Context, identityID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{identityIDKey: identityID.String()})
	} else {
		md = md.Copy()
		md.Set(identityIDKey, identityID.String())
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetIdentityIDFromContext returns the identity id set by the
// authentication interceptor.
func (m *Manager) GetIdentityIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	ids := md.Get(identityIDKey)
	if len(ids) == 0 {
		return uuid.Nil, false
	}

	identityID, err := uuid.Parse(ids[0])
	if err != nil {
		return uuid.Nil, false
	}

	return identityID, true
}

func (m *Manager) SetProfileToContext(ctx context.Context, profile model.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

// GetProfileFromContext returns the acting profile loaded by the
// authorization interceptor.
func (m *Manager) GetProfileFromContext(ctx context.Context) (model.Profile, bool) {
	profile, ok := ctx.Value(profileKey{}).(model.Profile)
	return profile, ok
}
