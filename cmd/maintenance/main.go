// Command maintenance runs administrative checks and repairs against a
// Vinculo server.
//
// Usage:
//
//	maintenance bootstrap-admin -name NAME -email EMAIL [-password PASSWORD]
//	maintenance check-email -email EMAIL
//	maintenance emails
//	maintenance orphans
//	maintenance remove-orphans [-dry-run]
//
// bootstrap-admin talks to the database and the identity provider directly
// and only works on an empty installation. Every other command signs in as
// VINCULO_ADMIN_EMAIL and calls the server at VINCULO_ADDR.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/config"
	"github.com/vinculopei/vinculo-server/internal/identity/gotrue"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/repository/postgres"
	"github.com/vinculopei/vinculo-server/internal/service"
)

const usage = `usage: maintenance <command> [flags]

commands:
  bootstrap-admin  create the first admin user of an empty installation
  check-email      report whether an email is in use
  emails           list registered profile emails
  orphans          list identities without a profile
  remove-orphans   delete identities without a profile
`

var errUsage = errors.New("invalid usage")

type authAPI interface {
	Login(ctx context.Context, in *pb.LoginRequest, opts ...grpc.CallOption) (*pb.LoginResponse, error)
	Logout(ctx context.Context, in *pb.Empty, opts ...grpc.CallOption) (*pb.Empty, error)
}

type maintenanceAPI interface {
	CheckEmailConflict(ctx context.Context, in *pb.CheckEmailRequest, opts ...grpc.CallOption) (*pb.CheckEmailResponse, error)
	RegisteredEmails(ctx context.Context, in *pb.Empty, opts ...grpc.CallOption) (*pb.RegisteredEmailsResponse, error)
	OrphanIdentities(ctx context.Context, in *pb.Empty, opts ...grpc.CallOption) (*pb.OrphanIdentitiesResponse, error)
	RemoveOrphanIdentities(ctx context.Context, in *pb.RemoveOrphansRequest, opts ...grpc.CallOption) (*pb.RemoveOrphansResponse, error)
}

var (
	_ authAPI        = (*pb.AuthClient)(nil)
	_ maintenanceAPI = (*pb.MaintenanceClient)(nil)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := config.NewCLIConfig()
	if err != nil {
		return err
	}
	lg := logger.NewWithWriter(os.Stderr, cfg.LogLevel)

	command, flags := args[0], args[1:]
	if command == "bootstrap-admin" {
		return bootstrapAdmin(ctx, cfg, flags, out, lg)
	}
	if !isRemoteCommand(command) {
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	conn, err := dial(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	authClient := pb.NewAuthClient(conn)
	ctx, err = signIn(ctx, authClient, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	defer func() {
		if _, err := authClient.Logout(ctx, &pb.Empty{}); err != nil {
			lg.Warn("failed to sign out", "error", err)
		}
	}()

	return runRemote(ctx, pb.NewMaintenanceClient(conn), command, flags, out)
}

func isRemoteCommand(command string) bool {
	switch command {
	case "check-email", "emails", "orphans", "remove-orphans":
		return true
	default:
		return false
	}
}

func dial(cfg *config.CLI) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if cfg.EnableTLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	conn, err := grpc.NewClient(cfg.Addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Addr, err)
	}
	return conn, nil
}

// signIn returns ctx carrying the admin's bearer token.
func signIn(ctx context.Context, client authAPI, email, password string) (context.Context, error) {
	if email == "" || password == "" {
		return nil, errors.New("VINCULO_ADMIN_EMAIL and VINCULO_ADMIN_PASSWORD must be set")
	}

	resp, err := client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+resp.Session.AccessToken), nil
}

func runRemote(ctx context.Context, api maintenanceAPI, command string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		result any
		err    error
	)

	switch command {
	case "check-email":
		email := fs.String("email", "", "email to look up")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if *email == "" {
			return fmt.Errorf("%w: -email is required", errUsage)
		}
		result, err = api.CheckEmailConflict(ctx, &pb.CheckEmailRequest{Email: *email})
	case "emails":
		if err := parseNoArgs(fs, args); err != nil {
			return err
		}
		result, err = api.RegisteredEmails(ctx, &pb.Empty{})
	case "orphans":
		if err := parseNoArgs(fs, args); err != nil {
			return err
		}
		result, err = api.OrphanIdentities(ctx, &pb.Empty{})
	case "remove-orphans":
		dryRun := fs.Bool("dry-run", false, "only list the identities that would be removed")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		result, err = api.RemoveOrphanIdentities(ctx, &pb.RemoveOrphansRequest{DryRun: *dryRun})
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", command, err)
	}

	return printJSON(out, result)
}

func parseNoArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s takes no arguments", errUsage, fs.Name())
	}
	return nil
}

func bootstrapAdmin(ctx context.Context, cfg *config.CLI, args []string, out io.Writer, lg *logger.Logger) error {
	fs := flag.NewFlagSet("bootstrap-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "admin name")
	email := fs.String("email", cfg.AdminEmail, "admin email")
	password := fs.String("password", cfg.AdminPassword, "admin password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	identityClient, err := gotrue.New(gotrue.Config{
		URL:     cfg.Identity.URL,
		APIKey:  cfg.Identity.AnonKey,
		Timeout: cfg.Identity.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create identity provider client: %w", err)
	}

	var admin model.IdentityAdmin
	if cfg.Identity.ServiceRoleKey != "" {
		a, err := gotrue.NewAdmin(gotrue.Config{
			URL:     cfg.Identity.URL,
			APIKey:  cfg.Identity.ServiceRoleKey,
			Timeout: cfg.Identity.Timeout,
		})
		if err != nil {
			return fmt.Errorf("failed to create identity admin client: %w", err)
		}
		admin = a
	}

	maintenance := service.NewMaintenance(postgres.NewProfileRepository(db), identityClient, admin, lg)
	profile, err := maintenance.BootstrapAdmin(ctx, *name, *email, *password)
	if err != nil {
		return fmt.Errorf("bootstrap-admin failed: %w", err)
	}

	return printJSON(out, map[string]string{
		"profile_id": profile.ID.String(),
		"email":      profile.Email,
		"role":       string(profile.Role),
	})
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
