package handler

import (
	"github.com/google/uuid"

	pb "github.com/vinculopei/vinculo-server/internal/api/grpc/vinculov1"
	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/model"
)

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, apierror.NewValidation("invalid user id")
	}
	return parsed, nil
}

func profileToProto(p model.Profile) pb.Profile {
	out := pb.Profile{
		ID:         p.ID.String(),
		Name:       p.Name,
		Email:      p.Email,
		Role:       string(p.Role),
		Status:     string(p.Status),
		SchoolID:   p.SchoolID,
		PlatformID: p.PlatformID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.IdentityID != nil {
		out.IdentityID = p.IdentityID.String()
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	return out
}

func permissionsToProto(p model.Permissions) pb.Permissions {
	return pb.Permissions{
		ViewStudents:    p.ViewStudents,
		ViewManagement:  p.ViewManagement,
		ViewDisciplines: p.ViewDisciplines,
		ViewReports:     p.ViewReports,
		ViewSettings:    p.ViewSettings,
	}
}

func identityToProto(i model.Identity) pb.Identity {
	return pb.Identity{
		ID:        i.ID.String(),
		Email:     i.Email,
		Confirmed: i.Confirmed,
		CreatedAt: i.CreatedAt,
	}
}

func identitiesToProto(identities []model.Identity) []pb.Identity {
	out := make([]pb.Identity, 0, len(identities))
	for _, i := range identities {
		out = append(out, identityToProto(i))
	}
	return out
}

func deleteReportToProto(r model.DeleteReport) *pb.DeleteUserResponse {
	out := &pb.DeleteUserResponse{
		ProfileID: r.ProfileID.String(),
		Partial:   r.Partial(),
		Steps:     make([]pb.DeleteStep, 0, len(r.Steps)),
	}
	if r.TeacherID != nil {
		out.TeacherID = r.TeacherID.String()
	}
	for _, s := range r.Steps {
		step := pb.DeleteStep{
			Name:     s.Name,
			Status:   string(s.Status),
			Affected: s.Affected,
		}
		if s.Err != nil {
			step.Error = s.Err.Error()
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}

func roleFromProto(role *string) *model.Role {
	if role == nil {
		return nil
	}
	r := model.Role(*role)
	return &r
}

func statusFromProto(status *string) *model.Status {
	if status == nil {
		return nil
	}
	s := model.Status(*status)
	return &s
}
