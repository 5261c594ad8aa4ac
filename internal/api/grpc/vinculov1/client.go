package vinculov1

import (
	"context"

	"google.golang.org/grpc"
)

// AuthClient is the client API for the vinculo.v1.Auth service.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Auth_Login_FullMethodName, in, opts)
}

func (c *AuthClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_Logout_FullMethodName, in, opts)
}

// UsersClient is the client API for the vinculo.v1.Users service.
type UsersClient struct {
	cc grpc.ClientConnInterface
}

func NewUsersClient(cc grpc.ClientConnInterface) *UsersClient {
	return &UsersClient{cc: cc}
}

func (c *UsersClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	return invoke[CreateUserResponse](ctx, c.cc, Users_CreateUser_FullMethodName, in, opts)
}

func (c *UsersClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, Users_UpdateUser_FullMethodName, in, opts)
}

func (c *UsersClient) DeleteUser(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserResponse](ctx, c.cc, Users_DeleteUser_FullMethodName, in, opts)
}

func (c *UsersClient) GetUser(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, Users_GetUser_FullMethodName, in, opts)
}

func (c *UsersClient) ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, Users_ListUsers_FullMethodName, in, opts)
}

func (c *UsersClient) UploadAvatar(ctx context.Context, in *UploadAvatarRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, Users_UploadAvatar_FullMethodName, in, opts)
}

func (c *UsersClient) GetAvatar(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*AvatarResponse, error) {
	return invoke[AvatarResponse](ctx, c.cc, Users_GetAvatar_FullMethodName, in, opts)
}

func (c *UsersClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, Users_Me_FullMethodName, in, opts)
}

// MaintenanceClient is the client API for the vinculo.v1.Maintenance service.
type MaintenanceClient struct {
	cc grpc.ClientConnInterface
}

func NewMaintenanceClient(cc grpc.ClientConnInterface) *MaintenanceClient {
	return &MaintenanceClient{cc: cc}
}

func (c *MaintenanceClient) CheckEmailConflict(ctx context.Context, in *CheckEmailRequest, opts ...grpc.CallOption) (*CheckEmailResponse, error) {
	return invoke[CheckEmailResponse](ctx, c.cc, Maintenance_CheckEmailConflict_FullMethodName, in, opts)
}

func (c *MaintenanceClient) RegisteredEmails(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RegisteredEmailsResponse, error) {
	return invoke[RegisteredEmailsResponse](ctx, c.cc, Maintenance_RegisteredEmails_FullMethodName, in, opts)
}

func (c *MaintenanceClient) OrphanIdentities(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*OrphanIdentitiesResponse, error) {
	return invoke[OrphanIdentitiesResponse](ctx, c.cc, Maintenance_OrphanIdentities_FullMethodName, in, opts)
}

func (c *MaintenanceClient) RemoveOrphanIdentities(ctx context.Context, in *RemoveOrphansRequest, opts ...grpc.CallOption) (*RemoveOrphansResponse, error) {
	return invoke[RemoveOrphansResponse](ctx, c.cc, Maintenance_RemoveOrphanIdentities_FullMethodName, in, opts)
}
