package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vinculopei/vinculo-server/internal/api/grpc/handler"
	"github.com/vinculopei/vinculo-server/internal/api/grpc/middleware"
	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// Router wires the vinculo.v1 services and their interceptor chain.
type Router struct {
	lifecycleService   *service.Lifecycle
	loginService       *service.Login
	maintenanceService *service.Maintenance
	tokenService       *service.TokenService
	profiles           middleware.ProfileFinder
	contextManager     model.ContextManager
	contactHint        string
	logger             *logger.Logger
}

// New creates new gRPC Router instance.
//
// Parameters:
//   - lifecycleService: user creation, update and deletion
//   - loginService: sign in, sign out and account lookup
//   - maintenanceService: administrative checks and repairs
//   - tokenService: access token verification
//   - profiles: profile lookup used to authorize requests
//   - contactHint: contact shown to users without a usable account
func New(
	lifecycleService *service.Lifecycle,
	loginService *service.Login,
	maintenanceService *service.Maintenance,
	tokenService *service.TokenService,
	profiles middleware.ProfileFinder,
	contextManager model.ContextManager,
	contactHint string,
	logger *logger.Logger,
) *Router {
	return &Router{
		lifecycleService:   lifecycleService,
		loginService:       loginService,
		maintenanceService: maintenanceService,
		tokenService:       tokenService,
		profiles:           profiles,
		contextManager:     contextManager,
		contactHint:        contactHint,
		logger:             logger,
	}
}

var publicServices = []string{
	pb.AuthServiceName,
	healthpb.Health_ServiceDesc.ServiceName,
}

// authSkip matches every method that requires a signed in caller.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	for _, name := range publicServices {
		if strings.HasPrefix(c.FullMethod(), "/"+name+"/") {
			return false
		}
	}
	return true
}

// Register builds the gRPC server with all services and interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.profiles, r.contextManager, pb.AdminMethods, r.contactHint, r.logger)

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(
				recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger)),
			),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
			selector.UnaryServerInterceptor(
				authorize.HandleGRPC,
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerUsersRoutes(s)
	r.registerMaintenanceRoutes(s)
	r.registerHealth(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.loginService, r.logger)
	pb.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerUsersRoutes(server *grpc.Server) {
	usersHandler := handler.NewUsers(r.lifecycleService, r.loginService, r.contextManager, r.logger)
	pb.RegisterUsersServer(server, usersHandler)
}

func (r *Router) registerMaintenanceRoutes(server *grpc.Server) {
	maintenanceHandler := handler.NewMaintenance(r.maintenanceService, r.logger)
	pb.RegisterMaintenanceServer(server, maintenanceHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range []string{pb.AuthServiceName, pb.UsersServiceName, pb.MaintenanceServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(server, hs)
}
