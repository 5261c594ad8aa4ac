package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
)

const identityPageSize = 200

// Maintenance groups administrative checks and repairs over profiles and
// identities.
type Maintenance struct {
	profiles model.ProfileStore
	identity model.IdentityProvider
	admin    model.IdentityAdmin
	logger   *logger.Logger
}

// NewMaintenance creates the service. admin may be nil; operations that
// need it then report the capability as unavailable.
func NewMaintenance(profiles model.ProfileStore, identity model.IdentityProvider, admin model.IdentityAdmin, logger *logger.Logger) *Maintenance {
	return &Maintenance{
		profiles: profiles,
		identity: identity,
		admin:    admin,
		logger:   logger,
	}
}

// EmailConflict describes who holds an email.
type EmailConflict struct {
	Email   string
	Profile *model.Profile
	// Identity is only looked up when the admin capability is configured.
	Identity        *model.Identity
	IdentityChecked bool
}

// InUse reports whether a profile or an identity holds the email.
func (c EmailConflict) InUse() bool {
	return c.Profile != nil || c.Identity != nil
}

func (s *Maintenance) CheckEmailConflict(ctx context.Context, email string) (EmailConflict, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return EmailConflict{}, err
	}

	conflict := EmailConflict{Email: email}

	profile, err := s.profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		conflict.Profile = &profile
	case !errors.Is(err, model.ErrNotFound):
		return EmailConflict{}, apierror.NewInternal(fmt.Errorf("failed to get profile by email: %w", err))
	}

	if s.admin == nil {
		return conflict, nil
	}

	identities, err := s.allIdentities(ctx)
	if err != nil {
		return EmailConflict{}, apierror.NewInternal(err)
	}
	conflict.IdentityChecked = true
	for i := range identities {
		if NormalizeEmail(identities[i].Email) == email {
			conflict.Identity = &identities[i]
			break
		}
	}

	return conflict, nil
}

// RegisteredEmails returns the distinct lowercased profile emails, sorted.
func (s *Maintenance) RegisteredEmails(ctx context.Context) ([]string, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apierror.NewInternal(fmt.Errorf("failed to list profiles: %w", err))
	}

	seen := make(map[string]struct{}, len(profiles))
	emails := make([]string, 0, len(profiles))
	for _, p := range profiles {
		email := NormalizeEmail(p.Email)
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	sort.Strings(emails)

	return emails, nil
}

// OrphanIdentities returns identities that no profile refers to, neither by
// identity id nor by email.
func (s *Maintenance) OrphanIdentities(ctx context.Context) ([]model.Identity, error) {
	if s.admin == nil {
		return nil, apierror.NewAdminUnavailable("identity admin access")
	}

	identities, err := s.allIdentities(ctx)
	if err != nil {
		return nil, apierror.NewInternal(err)
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apierror.NewInternal(fmt.Errorf("failed to list profiles: %w", err))
	}

	linked := make(map[uuid.UUID]struct{}, len(profiles))
	emails := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if p.IdentityID != nil {
			linked[*p.IdentityID] = struct{}{}
		}
		emails[NormalizeEmail(p.Email)] = struct{}{}
	}

	var orphans []model.Identity
	for _, identity := range identities {
		if _, ok := linked[identity.ID]; ok {
			continue
		}
		if _, ok := emails[NormalizeEmail(identity.Email)]; ok {
			continue
		}
		orphans = append(orphans, identity)
	}

	return orphans, nil
}

// OrphanRemovalFailure is an orphan that could not be deleted.
type OrphanRemovalFailure struct {
	Identity model.Identity
	Err      error
}

// OrphanCleanup is the outcome of RemoveOrphanIdentities.
type OrphanCleanup struct {
	Orphans []model.Identity
	Removed []model.Identity
	Failed  []OrphanRemovalFailure
	DryRun  bool
}

// RemoveOrphanIdentities deletes every orphan identity. With dryRun set it
// only reports them.
func (s *Maintenance) RemoveOrphanIdentities(ctx context.Context, dryRun bool) (OrphanCleanup, error) {
	orphans, err := s.OrphanIdentities(ctx)
	if err != nil {
		return OrphanCleanup{}, err
	}

	result := OrphanCleanup{Orphans: orphans, DryRun: dryRun}
	if dryRun {
		return result, nil
	}

	for _, identity := range orphans {
		if err := s.admin.DeleteIdentity(ctx, identity.ID); err != nil {
			s.logger.Error("Maintenance service: failed to delete orphan identity",
				"identity_id", identity.ID,
				"email", identity.Email,
				"error", err.Error())
			result.Failed = append(result.Failed, OrphanRemovalFailure{Identity: identity, Err: err})
			continue
		}
		result.Removed = append(result.Removed, identity)
	}

	s.logger.Info("Maintenance service: orphan identities removed",
		"removed", len(result.Removed),
		"failed", len(result.Failed))

	return result, nil
}

func (s *Maintenance) allIdentities(ctx context.Context) ([]model.Identity, error) {
	var all []model.Identity
	for page := 1; ; page++ {
		batch, err := s.admin.ListIdentities(ctx, page, identityPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list identities: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < identityPageSize {
			return all, nil
		}
	}
}

// BootstrapAdmin creates the first administrator of an empty installation.
// The profile is written first and removed again if the identity cannot be
// created.
func (s *Maintenance) BootstrapAdmin(ctx context.Context, name, email, password string) (model.Profile, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if err := validateNewUser(name, email, password, model.RoleAdmin); err != nil {
		return model.Profile{}, err
	}

	n, err := s.profiles.Count(ctx)
	if err != nil {
		return model.Profile{}, apierror.NewInternal(fmt.Errorf("failed to count profiles: %w", err))
	}
	if n > 0 {
		return model.Profile{}, apierror.NewAlreadyInitialized()
	}

	profile, err := s.profiles.Create(ctx, model.Profile{
		ID:     uuid.New(),
		Name:   name,
		Email:  email,
		Role:   model.RoleAdmin,
		Status: model.StatusActive,
	})
	if err != nil {
		return model.Profile{}, apierror.NewProfilePersistFailed(err)
	}

	identity, err := s.identity.Isolated().SignUp(ctx, model.SignUpParams{
		Email:    email,
		Password: password,
		Metadata: map[string]any{"name": name, "role": string(model.RoleAdmin)},
	})
	if err != nil && !(errors.Is(err, model.ErrIdentityHookFailed) && identity.ID != uuid.Nil) {
		if derr := s.profiles.Delete(ctx, profile.ID); derr != nil {
			s.logger.Error("Maintenance service: failed to roll back admin profile",
				"profile_id", profile.ID,
				"error", derr.Error())
		}
		if errors.Is(err, model.ErrIdentityAlreadyRegistered) {
			return model.Profile{}, apierror.NewEmailInUse()
		}
		return model.Profile{}, identityCreationError(err)
	}

	identityID := identity.ID
	linked, err := s.profiles.Update(ctx, profile.ID, model.ProfilePatch{IdentityID: &identityID})
	if err != nil {
		return model.Profile{}, apierror.NewProfilePersistFailed(err)
	}

	s.logger.Info("Maintenance service: first administrator created",
		"profile_id", linked.ID,
		"identity_id", identityID)

	return linked, nil
}
