package handler

import (
	"context"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/service"
)

// MaintenanceService defines administrative checks and repairs.
type MaintenanceService interface {
	CheckEmailConflict(ctx context.Context, email string) (service.EmailConflict, error)
	RegisteredEmails(ctx context.Context) ([]string, error)
	OrphanIdentities(ctx context.Context) ([]model.Identity, error)
	RemoveOrphanIdentities(ctx context.Context, dryRun bool) (service.OrphanCleanup, error)
}

// Maintenance handles the vinculo.v1.Maintenance service.
type Maintenance struct {
	maintenanceService MaintenanceService
	logger             *logger.Logger
}

var _ pb.MaintenanceServer = (*Maintenance)(nil)

func NewMaintenance(maintenanceService MaintenanceService, logger *logger.Logger) *Maintenance {
	return &Maintenance{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

func (h *Maintenance) CheckEmailConflict(ctx context.Context, req *pb.CheckEmailRequest) (*pb.CheckEmailResponse, error) {
	conflict, err := h.maintenanceService.CheckEmailConflict(ctx, req.Email)
	if err != nil {
		return nil, handleError(err)
	}

	resp := &pb.CheckEmailResponse{
		Email:           conflict.Email,
		InUse:           conflict.InUse(),
		IdentityChecked: conflict.IdentityChecked,
	}
	if conflict.Profile != nil {
		resp.ProfileID = conflict.Profile.ID.String()
		resp.ProfileName = conflict.Profile.Name
	}
	if conflict.Identity != nil {
		resp.IdentityID = conflict.Identity.ID.String()
	}

	return resp, nil
}

func (h *Maintenance) RegisteredEmails(ctx context.Context, _ *pb.Empty) (*pb.RegisteredEmailsResponse, error) {
	emails, err := h.maintenanceService.RegisteredEmails(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &pb.RegisteredEmailsResponse{Emails: emails, Count: len(emails)}, nil
}

func (h *Maintenance) OrphanIdentities(ctx context.Context, _ *pb.Empty) (*pb.OrphanIdentitiesResponse, error) {
	orphans, err := h.maintenanceService.OrphanIdentities(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &pb.OrphanIdentitiesResponse{Identities: identitiesToProto(orphans)}, nil
}

// RemoveOrphanIdentities deletes identities without a profile. Failures of
// single deletions are reported in the response, not as an error.
func (h *Maintenance) RemoveOrphanIdentities(ctx context.Context, req *pb.RemoveOrphansRequest) (*pb.RemoveOrphansResponse, error) {
	result, err := h.maintenanceService.RemoveOrphanIdentities(ctx, req.DryRun)
	if err != nil {
		h.logger.Error("Maintenance handler: orphan removal failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	resp := &pb.RemoveOrphansResponse{
		DryRun:  result.DryRun,
		Orphans: identitiesToProto(result.Orphans),
		Removed: identitiesToProto(result.Removed),
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, pb.OrphanFailure{
			Identity: identityToProto(f.Identity),
			Error:    f.Err.Error(),
		})
	}

	return resp, nil
}
