package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSpecialty is assigned to teacher links created with a new user.
const DefaultSpecialty = "Regular Education"

// TeacherStore defines persistence operations for teacher links.
// A profile has at most one link.
type TeacherStore interface {
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (TeacherLink, error)
	Create(ctx context.Context, link TeacherLink) (TeacherLink, error)
	UpdateSchool(ctx context.Context, profileID uuid.UUID, schoolID int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeacherLink binds a Professional profile to a school.
type TeacherLink struct {
	ID         uuid.UUID
	ProfileID  uuid.UUID
	Name       string
	Email      string
	SchoolID   int64
	Specialty  string
	PlatformID *int64
	CreatedAt  time.Time
}
