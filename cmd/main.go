package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	grpcctx "github.com/vinculopei/vinculo-server/internal/api/grpc/context"
	"github.com/vinculopei/vinculo-server/internal/api/grpc/router"
	grpcServer "github.com/vinculopei/vinculo-server/internal/api/grpc/server"
	"github.com/vinculopei/vinculo-server/internal/config"
	"github.com/vinculopei/vinculo-server/internal/identity/gotrue"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/repository/postgres"
	"github.com/vinculopei/vinculo-server/internal/server"
	"github.com/vinculopei/vinculo-server/internal/service"
	storage "github.com/vinculopei/vinculo-server/internal/storage/minio"
	"github.com/vinculopei/vinculo-server/internal/telemetry"
	"github.com/vinculopei/vinculo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	teacherRepo := postgres.NewTeacherRepository(db)
	dependentRepo := postgres.NewDependentRepository(db)

	identityClient, err := gotrue.New(gotrue.Config{
		URL:     cfg.Identity.URL,
		APIKey:  cfg.Identity.AnonKey,
		Timeout: cfg.Identity.Timeout,
	})
	if err != nil {
		logger.Fatal("failed to create identity provider client", "error", err)
	}

	identityAdmin := newIdentityAdmin(cfg.Identity, logger)
	avatarStorage := newAvatarStorage(ctx, cfg.Storage, logger)

	lifecycleService := service.NewLifecycle(
		profileRepo,
		teacherRepo,
		dependentRepo,
		identityClient,
		identityAdmin,
		avatarStorage,
		service.LifecycleOptions{
			CompensateOnFailure:    cfg.Identity.CompensateOnFailure,
			DeleteIdentityOnRemove: cfg.Identity.DeleteOnRemove,
		},
		logger,
	)
	loginService := service.NewLogin(profileRepo, identityClient, cfg.Support.ContactHint, logger)
	maintenanceService := service.NewMaintenance(profileRepo, identityClient, identityAdmin, logger)
	tokenService := service.NewTokenService(token.NewJWT(cfg.Token.Secret, cfg.Token.Audience))
	ctxMgr := grpcctx.NewManager()

	r := router.New(
		lifecycleService,
		loginService,
		maintenanceService,
		tokenService,
		profileRepo,
		ctxMgr,
		cfg.Support.ContactHint,
		logger,
	)
	grpcServer := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}
	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error during tracing shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

// newIdentityAdmin returns nil when no service role key is configured.
func newIdentityAdmin(cfg config.Identity, logger *logger.Logger) model.IdentityAdmin {
	if cfg.ServiceRoleKey == "" {
		logger.Warn("identity admin access is not configured, orphan cleanup and compensation are disabled")
		return nil
	}

	admin, err := gotrue.NewAdmin(gotrue.Config{
		URL:     cfg.URL,
		APIKey:  cfg.ServiceRoleKey,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		logger.Fatal("failed to create identity admin client", "error", err)
	}
	return admin
}

func newAvatarStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) model.AvatarStorage {
	if !cfg.Enabled {
		logger.Info("avatar storage is disabled")
		return nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	return storageClient
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
