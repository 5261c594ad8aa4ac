package vinculov1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/vinculopei/vinculo-server/internal/api/grpc/codec"
)

// unary adapts a typed service method to a grpc.MethodHandler.
func unary[S, Req, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const (
	AuthServiceName        = "vinculo.v1.Auth"
	UsersServiceName       = "vinculo.v1.Users"
	MaintenanceServiceName = "vinculo.v1.Maintenance"
)

const (
	Auth_Login_FullMethodName  = "/vinculo.v1.Auth/Login"
	Auth_Logout_FullMethodName = "/vinculo.v1.Auth/Logout"

	Users_CreateUser_FullMethodName   = "/vinculo.v1.Users/CreateUser"
	Users_UpdateUser_FullMethodName   = "/vinculo.v1.Users/UpdateUser"
	Users_DeleteUser_FullMethodName   = "/vinculo.v1.Users/DeleteUser"
	Users_GetUser_FullMethodName      = "/vinculo.v1.Users/GetUser"
	Users_ListUsers_FullMethodName    = "/vinculo.v1.Users/ListUsers"
	Users_UploadAvatar_FullMethodName = "/vinculo.v1.Users/UploadAvatar"
	Users_GetAvatar_FullMethodName    = "/vinculo.v1.Users/GetAvatar"
	Users_Me_FullMethodName           = "/vinculo.v1.Users/Me"

	Maintenance_CheckEmailConflict_FullMethodName     = "/vinculo.v1.Maintenance/CheckEmailConflict"
	Maintenance_RegisteredEmails_FullMethodName       = "/vinculo.v1.Maintenance/RegisteredEmails"
	Maintenance_OrphanIdentities_FullMethodName       = "/vinculo.v1.Maintenance/OrphanIdentities"
	Maintenance_RemoveOrphanIdentities_FullMethodName = "/vinculo.v1.Maintenance/RemoveOrphanIdentities"
)

// AdminMethods lists the methods only an Admin profile may call.
var AdminMethods = map[string]bool{
	Users_CreateUser_FullMethodName:                   true,
	Users_UpdateUser_FullMethodName:                   true,
	Users_DeleteUser_FullMethodName:                   true,
	Users_GetUser_FullMethodName:                      true,
	Users_ListUsers_FullMethodName:                    true,
	Users_UploadAvatar_FullMethodName:                 true,
	Maintenance_CheckEmailConflict_FullMethodName:     true,
	Maintenance_RegisteredEmails_FullMethodName:       true,
	Maintenance_OrphanIdentities_FullMethodName:       true,
	Maintenance_RemoveOrphanIdentities_FullMethodName: true,
}

// AuthServer is the server API for the vinculo.v1.Auth service.
type AuthServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	// Logout revokes the session of the bearer token in the request metadata.
	Logout(context.Context, *Empty) (*Empty, error)
}

var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(Auth_Login_FullMethodName, AuthServer.Login)},
		{MethodName: "Logout", Handler: unary(Auth_Logout_FullMethodName, AuthServer.Logout)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vinculo/v1/auth",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// UsersServer is the server API for the vinculo.v1.Users service.
type UsersServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	DeleteUser(context.Context, *UserRequest) (*DeleteUserResponse, error)
	GetUser(context.Context, *UserRequest) (*UserResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	UploadAvatar(context.Context, *UploadAvatarRequest) (*UserResponse, error)
	GetAvatar(context.Context, *UserRequest) (*AvatarResponse, error)
	Me(context.Context, *Empty) (*AccountResponse, error)
}

var Users_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UsersServiceName,
	HandlerType: (*UsersServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: unary(Users_CreateUser_FullMethodName, UsersServer.CreateUser)},
		{MethodName: "UpdateUser", Handler: unary(Users_UpdateUser_FullMethodName, UsersServer.UpdateUser)},
		{MethodName: "DeleteUser", Handler: unary(Users_DeleteUser_FullMethodName, UsersServer.DeleteUser)},
		{MethodName: "GetUser", Handler: unary(Users_GetUser_FullMethodName, UsersServer.GetUser)},
		{MethodName: "ListUsers", Handler: unary(Users_ListUsers_FullMethodName, UsersServer.ListUsers)},
		{MethodName: "UploadAvatar", Handler: unary(Users_UploadAvatar_FullMethodName, UsersServer.UploadAvatar)},
		{MethodName: "GetAvatar", Handler: unary(Users_GetAvatar_FullMethodName, UsersServer.GetAvatar)},
		{MethodName: "Me", Handler: unary(Users_Me_FullMethodName, UsersServer.Me)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vinculo/v1/users",
}

func RegisterUsersServer(s grpc.ServiceRegistrar, srv UsersServer) {
	s.RegisterService(&Users_ServiceDesc, srv)
}

// MaintenanceServer is the server API for the vinculo.v1.Maintenance service.
type MaintenanceServer interface {
	CheckEmailConflict(context.Context, *CheckEmailRequest) (*CheckEmailResponse, error)
	RegisteredEmails(context.Context, *Empty) (*RegisteredEmailsResponse, error)
	OrphanIdentities(context.Context, *Empty) (*OrphanIdentitiesResponse, error)
	RemoveOrphanIdentities(context.Context, *RemoveOrphansRequest) (*RemoveOrphansResponse, error)
}

var Maintenance_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MaintenanceServiceName,
	HandlerType: (*MaintenanceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckEmailConflict", Handler: unary(Maintenance_CheckEmailConflict_FullMethodName, MaintenanceServer.CheckEmailConflict)},
		{MethodName: "RegisteredEmails", Handler: unary(Maintenance_RegisteredEmails_FullMethodName, MaintenanceServer.RegisteredEmails)},
		{MethodName: "OrphanIdentities", Handler: unary(Maintenance_OrphanIdentities_FullMethodName, MaintenanceServer.OrphanIdentities)},
		{MethodName: "RemoveOrphanIdentities", Handler: unary(Maintenance_RemoveOrphanIdentities_FullMethodName, MaintenanceServer.RemoveOrphanIdentities)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vinculo/v1/maintenance",
}

func RegisterMaintenanceServer(s grpc.ServiceRegistrar, srv MaintenanceServer) {
	s.RegisterService(&Maintenance_ServiceDesc, srv)
}
