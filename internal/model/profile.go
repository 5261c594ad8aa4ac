package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for user profiles.
// Email lookups are case-insensitive.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	GetByIdentityID(ctx context.Context, identityID uuid.UUID) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch) (Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Role is the access type of a profile.
type Role string

const (
	// RoleAdmin manages users and settings.
	RoleAdmin Role = "Admin"
	// RoleTutor follows students.
	RoleTutor Role = "Tutor"
	// RoleProfessional is a teacher linked to a school.
	RoleProfessional Role = "Professional"
	// RoleFamily is a read-only family viewer.
	RoleFamily Role = "Family"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTutor, RoleProfessional, RoleFamily:
		return true
	default:
		return false
	}
}

// Status is the activation state of a profile.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Profile is the canonical user record. IdentityID references the
// identity provider record and is nil until the identity is linked.
type Profile struct {
	ID         uuid.UUID
	IdentityID *uuid.UUID
	Name       string
	Email      string
	Role       Role
	Status     Status
	Avatar     *string
	SchoolID   *int64
	PlatformID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the profile may sign in.
func (p Profile) Active() bool {
	return p.Status == StatusActive
}

// ProfilePatch lists profile fields to change. Nil fields are left as they are.
type ProfilePatch struct {
	IdentityID *uuid.UUID
	Name       *string
	Role       *Role
	Status     *Status
	Avatar     *string
	SchoolID   *int64
	PlatformID *int64
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.IdentityID == nil && p.Name == nil && p.Role == nil && p.Status == nil &&
		p.Avatar == nil && p.SchoolID == nil && p.PlatformID == nil
}
