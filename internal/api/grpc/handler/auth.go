package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// LoginService defines sign in, sign out and account lookup.
type LoginService interface {
	Authenticate(ctx context.Context, email, password string) (service.LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, identityID uuid.UUID) (service.Account, error)
}

// Auth handles the vinculo.v1.Auth service.
type Auth struct {
	loginService LoginService
	logger       *logger.Logger
}

var _ pb.AuthServer = (*Auth)(nil)

// NewAuth creates a new Auth handler.
func NewAuth(loginService LoginService, logger *logger.Logger) *Auth {
	return &Auth{
		loginService: loginService,
		logger:       logger,
	}
}

// Login authenticates the credentials and returns the session together with
// the profile and its permissions.
func (h *Auth) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	result, err := h.loginService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", req.Email,
			"kind", apierror.KindOf(err))
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"profile_id", result.Profile.ID)

	return &pb.LoginResponse{
		Session: pb.Session{
			AccessToken:  result.Session.AccessToken,
			RefreshToken: result.Session.RefreshToken,
			ExpiresAt:    result.Session.ExpiresAt,
		},
		Profile:     profileToProto(result.Profile),
		Permissions: permissionsToProto(result.Permissions),
	}, nil
}

// Logout revokes the session of the bearer token sent in metadata.
func (h *Auth) Logout(ctx context.Context, _ *pb.Empty) (*pb.Empty, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, handleError(apierror.NewUnauthenticated("missing authorization token"))
	}

	if err := h.loginService.Logout(ctx, token); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &pb.Empty{}, nil
}
