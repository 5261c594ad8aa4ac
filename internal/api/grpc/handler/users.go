package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// UserService defines user administration operations.
type UserService interface {
	Create(ctx context.Context, params service.CreateParams) (service.CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, params service.UpdateParams) (model.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) (model.DeleteReport, error)
	Get(ctx context.Context, id uuid.UUID) (model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, data []byte) (model.Profile, error)
	Avatar(ctx context.Context, id uuid.UUID) (service.AvatarObject, error)
}

// Users handles the vinculo.v1.Users service.
type Users struct {
	userService    UserService
	loginService   LoginService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ pb.UsersServer = (*Users)(nil)

// NewUsers creates a new Users handler.
func NewUsers(userService UserService, loginService LoginService, contextManager model.ContextManager, logger *logger.Logger) *Users {
	return &Users{
		userService:    userService,
		loginService:   loginService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Users) actor(ctx context.Context) uuid.UUID {
	profile, _ := h.contextManager.GetProfileFromContext(ctx)
	return profile.ID
}

// CreateUser registers the identity and profile of a new user.
func (h *Users) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	h.logger.Debug("Users handler: processing create request",
		"email", req.Email,
		"role", req.Role,
		"actor_id", h.actor(ctx))

	result, err := h.userService.Create(ctx, service.CreateParams{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       model.Role(req.Role),
		Avatar:     req.Avatar,
		SchoolID:   req.SchoolID,
		PlatformID: req.PlatformID,
	})
	if err != nil {
		h.logger.Error("Users handler: create failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &pb.CreateUserResponse{
		Profile:    profileToProto(result.Profile),
		IdentityID: result.Identity.ID.String(),
		Warnings:   result.Warnings,
	}, nil
}

func (h *Users) UpdateUser(ctx context.Context, req *pb.UpdateUserRequest) (*pb.UserResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	profile, err := h.userService.Update(ctx, id, service.UpdateParams{
		Name:     req.Name,
		Role:     roleFromProto(req.Role),
		Status:   statusFromProto(req.Status),
		Avatar:   req.Avatar,
		SchoolID: req.SchoolID,
	})
	if err != nil {
		h.logger.Error("Users handler: update failed",
			"profile_id", id,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &pb.UserResponse{Profile: profileToProto(profile)}, nil
}

// DeleteUser removes a user and returns the outcome of every cleanup step.
func (h *Users) DeleteUser(ctx context.Context, req *pb.UserRequest) (*pb.DeleteUserResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	report, err := h.userService.Delete(ctx, id)
	if err != nil {
		h.logger.Error("Users handler: delete failed",
			"profile_id", id,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Users handler: user deleted",
		"profile_id", id,
		"actor_id", h.actor(ctx),
		"partial", report.Partial())

	return deleteReportToProto(report), nil
}

func (h *Users) GetUser(ctx context.Context, req *pb.UserRequest) (*pb.UserResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	profile, err := h.userService.Get(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}

	return &pb.UserResponse{Profile: profileToProto(profile)}, nil
}

func (h *Users) ListUsers(ctx context.Context, _ *pb.Empty) (*pb.ListUsersResponse, error) {
	profiles, err := h.userService.List(ctx)
	if err != nil {
		h.logger.Error("Users handler: list failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	users := make([]pb.Profile, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, profileToProto(p))
	}

	return &pb.ListUsersResponse{Users: users}, nil
}

func (h *Users) UploadAvatar(ctx context.Context, req *pb.UploadAvatarRequest) (*pb.UserResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	profile, err := h.userService.UploadAvatar(ctx, id, req.ContentType, req.Data)
	if err != nil {
		h.logger.Error("Users handler: avatar upload failed",
			"profile_id", id,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &pb.UserResponse{Profile: profileToProto(profile)}, nil
}

func (h *Users) GetAvatar(ctx context.Context, req *pb.UserRequest) (*pb.AvatarResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	obj, err := h.userService.Avatar(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		h.logger.Error("Users handler: failed to read avatar",
			"profile_id", id,
			"key", obj.Key,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &pb.AvatarResponse{ContentType: obj.ContentType, Data: data}, nil
}

// Me returns the caller's profile and permissions.
func (h *Users) Me(ctx context.Context, _ *pb.Empty) (*pb.AccountResponse, error) {
	identityID, ok := h.contextManager.GetIdentityIDFromContext(ctx)
	if !ok {
		return nil, handleError(apierror.NewUnauthenticated("missing authorization token"))
	}

	account, err := h.loginService.Me(ctx, identityID)
	if err != nil {
		return nil, handleError(err)
	}

	return &pb.AccountResponse{
		Profile:     profileToProto(account.Profile),
		Permissions: permissionsToProto(account.Permissions),
	}, nil
}
