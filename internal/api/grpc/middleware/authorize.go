package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// ProfileFinder looks up the profile linked to an identity.
type ProfileFinder interface {
	GetByIdentityID(ctx context.Context, identityID uuid.UUID) (model.Profile, error)
}

// Authorize loads the acting profile of an authenticated request. The
// profile must be active, and admin methods require the Admin role.
type Authorize struct {
	profiles       ProfileFinder
	contextManager model.ContextManager
	adminMethods   map[string]bool
	contactHint    string
	logger         *logger.Logger
}

func NewAuthorize(
	profiles ProfileFinder,
	contextManager model.ContextManager,
	adminMethods map[string]bool,
	contactHint string,
	logger *logger.Logger,
) *Authorize {
	return &Authorize{
		profiles:       profiles,
		contextManager: contextManager,
		adminMethods:   adminMethods,
		contactHint:    contactHint,
		logger:         logger,
	}
}

// HandleGRPC is a unary interceptor. It runs after authentication.
func (m *Authorize) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := m.authorize(ctx, info.FullMethod)
	if err != nil {
		m.logger.Info("Authorize middleware: request denied",
			"method", info.FullMethod,
			"error", err.Error())
		return nil, apierror.Status(err)
	}

	return handler(ctx, req)
}

func (m *Authorize) authorize(ctx context.Context, method string) (context.Context, error) {
	identityID, ok := m.contextManager.GetIdentityIDFromContext(ctx)
	if !ok {
		return nil, apierror.NewUnauthenticated("missing authorization token")
	}

	profile, err := m.profiles.GetByIdentityID(ctx, identityID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil, apierror.NewOrphanedIdentity(m.contactHint)
	case err != nil:
		return nil, apierror.NewInternal(fmt.Errorf("failed to get profile by identity: %w", err))
	case !profile.Active():
		return nil, apierror.NewInactiveAccount()
	case m.adminMethods[method] && profile.Role != model.RoleAdmin:
		return nil, apierror.NewPermissionDenied()
	}

	return m.contextManager.SetProfileToContext(ctx, profile), nil
}
