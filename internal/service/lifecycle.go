package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
)

const (
	avatarPrefix  = "avatars/"
	maxAvatarSize = 2 << 20
)

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LifecycleOptions control the compensating and cleanup actions taken
// against the identity provider.
type LifecycleOptions struct {
	// CompensateOnFailure deletes a freshly created identity when its
	// profile cannot be saved.
	CompensateOnFailure bool
	// DeleteIdentityOnRemove deletes the identity together with the profile.
	DeleteIdentityOnRemove bool
}

// Lifecycle creates, updates and deletes users. A user spans an identity at
// the provider and a profile with its dependent rows; there is no shared
// transaction, so every step is checked before it acts.
type Lifecycle struct {
	profiles   model.ProfileStore
	teachers   model.TeacherStore
	dependents model.DependentStore
	identity   model.IdentityProvider
	admin      model.IdentityAdmin
	avatars    model.AvatarStorage
	opts       LifecycleOptions
	logger     *logger.Logger
}

// NewLifecycle creates the service. admin and avatars may be nil.
func NewLifecycle(
	profiles model.ProfileStore,
	teachers model.TeacherStore,
	dependents model.DependentStore,
	identity model.IdentityProvider,
	admin model.IdentityAdmin,
	avatars model.AvatarStorage,
	opts LifecycleOptions,
	logger *logger.Logger,
) *Lifecycle {
	return &Lifecycle{
		profiles:   profiles,
		teachers:   teachers,
		dependents: dependents,
		identity:   identity,
		admin:      admin,
		avatars:    avatars,
		opts:       opts,
		logger:     logger,
	}
}

// CreateParams describes a new user.
type CreateParams struct {
	Name       string
	Email      string
	Password   string
	Role       model.Role
	Avatar     *string
	SchoolID   *int64
	PlatformID *int64
}

// CreateResult is a created user. Warnings list secondary steps that failed
// without failing the creation.
type CreateResult struct {
	Identity model.Identity
	Profile  model.Profile
	Warnings []string
}

// Create registers the identity and reconciles the profile with it.
func (s *Lifecycle) Create(ctx context.Context, params CreateParams) (CreateResult, error) {
	email := NormalizeEmail(params.Email)
	name := strings.TrimSpace(params.Name)

	if err := validateNewUser(name, email, params.Password, params.Role); err != nil {
		return CreateResult{}, err
	}

	existing, err := s.profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info("Lifecycle service: email already registered",
			"email", email,
			"profile_id", existing.ID)
		return CreateResult{}, apierror.NewDuplicateEmail(existing.Name)
	case !errors.Is(err, model.ErrNotFound):
		s.logger.Error("Lifecycle service: failed to check email",
			"email", email,
			"error", err.Error())
		return CreateResult{}, apierror.NewInternal(fmt.Errorf("failed to get profile by email: %w", err))
	}

	identity, err := s.identity.Isolated().SignUp(ctx, model.SignUpParams{
		Email:    email,
		Password: params.Password,
		Metadata: map[string]any{
			"name": name,
			"role": string(params.Role),
		},
	})
	if err != nil {
		identity, err = s.classifySignUp(email, identity, err)
		if err != nil {
			return CreateResult{}, err
		}
	}

	profile, err := s.reconcileProfile(ctx, identity, name, email, params)
	if err != nil {
		s.logger.Error("Lifecycle service: failed to save profile",
			"email", email,
			"identity_id", identity.ID,
			"error", err.Error())

		persistErr := apierror.NewProfilePersistFailed(err)
		if cerr := s.compensate(ctx, identity); cerr != nil {
			persistErr.Err = errors.Join(err, cerr)
		}
		return CreateResult{Identity: identity}, persistErr
	}

	result := CreateResult{Identity: identity, Profile: profile}

	if params.Role == model.RoleProfessional && params.SchoolID != nil {
		if err := s.ensureTeacherLink(ctx, profile, *params.SchoolID, params.PlatformID); err != nil {
			s.logger.Warn("Lifecycle service: failed to link teacher to school",
				"profile_id", profile.ID,
				"school_id", *params.SchoolID,
				"error", err.Error())
			result.Warnings = append(result.Warnings, "user was created but the teacher could not be linked to the school")
		}
	}

	s.logger.Info("Lifecycle service: user created",
		"profile_id", profile.ID,
		"identity_id", identity.ID,
		"role", profile.Role)

	return result, nil
}

func (s *Lifecycle) classifySignUp(email string, identity model.Identity, err error) (model.Identity, error) {
	switch {
	case errors.Is(err, model.ErrIdentityAlreadyRegistered):
		s.logger.Info("Lifecycle service: identity already registered",
			"email", email)
		return model.Identity{}, apierror.NewEmailInUse()
	case errors.Is(err, model.ErrIdentityHookFailed) && identity.ID != uuid.Nil:
		s.logger.Warn("Lifecycle service: identity created but provider hook failed",
			"email", email,
			"identity_id", identity.ID,
			"error", err.Error())
		return identity, nil
	default:
		s.logger.Error("Lifecycle service: failed to create identity",
			"email", email,
			"error", err.Error())
		return model.Identity{}, identityCreationError(err)
	}
}

// reconcileProfile merges into a profile the provider may have created as a
// side effect of sign up, or inserts a new one.
func (s *Lifecycle) reconcileProfile(ctx context.Context, identity model.Identity, name, email string, params CreateParams) (model.Profile, error) {
	identityID := identity.ID
	role := params.Role
	active := model.StatusActive

	existing, err := s.profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info("Lifecycle service: merging pre-created profile",
			"profile_id", existing.ID,
			"identity_id", identityID)
		return s.profiles.Update(ctx, existing.ID, model.ProfilePatch{
			IdentityID: &identityID,
			Name:       &name,
			Role:       &role,
			Status:     &active,
			Avatar:     params.Avatar,
			SchoolID:   params.SchoolID,
			PlatformID: params.PlatformID,
		})
	case errors.Is(err, model.ErrNotFound):
		return s.profiles.Create(ctx, model.Profile{
			ID:         uuid.New(),
			IdentityID: &identityID,
			Name:       name,
			Email:      email,
			Role:       role,
			Status:     active,
			Avatar:     params.Avatar,
			SchoolID:   params.SchoolID,
			PlatformID: params.PlatformID,
		})
	default:
		return model.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}
}

func (s *Lifecycle) compensate(ctx context.Context, identity model.Identity) error {
	if !s.opts.CompensateOnFailure || s.admin == nil {
		s.logger.Warn("Lifecycle service: identity left without profile",
			"identity_id", identity.ID,
			"email", identity.Email)
		return nil
	}

	if err := s.admin.DeleteIdentity(ctx, identity.ID); err != nil {
		s.logger.Error("Lifecycle service: failed to delete identity after profile failure",
			"identity_id", identity.ID,
			"error", err.Error())
		return fmt.Errorf("failed to delete identity %s: %w", identity.ID, err)
	}

	s.logger.Info("Lifecycle service: identity deleted after profile failure",
		"identity_id", identity.ID)
	return nil
}

func (s *Lifecycle) ensureTeacherLink(ctx context.Context, profile model.Profile, schoolID int64, platformID *int64) error {
	_, err := s.teachers.GetByProfileID(ctx, profile.ID)
	switch {
	case err == nil:
		return s.teachers.UpdateSchool(ctx, profile.ID, schoolID)
	case errors.Is(err, model.ErrNotFound):
		_, err = s.teachers.Create(ctx, model.TeacherLink{
			ID:         uuid.New(),
			ProfileID:  profile.ID,
			Name:       profile.Name,
			Email:      profile.Email,
			SchoolID:   schoolID,
			Specialty:  model.DefaultSpecialty,
			PlatformID: platformID,
		})
		return err
	default:
		return err
	}
}

// UpdateParams lists profile fields to change. Nil fields are left as they are.
type UpdateParams struct {
	Name     *string
	Role     *model.Role
	Status   *model.Status
	Avatar   *string
	SchoolID *int64
}

// Update changes a profile. When the profile is a Professional and a school
// is given, the existing teacher link follows it; no link is created here.
func (s *Lifecycle) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (model.Profile, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if err := validateName(name); err != nil {
			return model.Profile{}, err
		}
		params.Name = &name
	}
	if params.Role != nil {
		if err := validateRole(*params.Role); err != nil {
			return model.Profile{}, err
		}
	}
	if params.Status != nil {
		if err := validateStatus(*params.Status); err != nil {
			return model.Profile{}, err
		}
	}

	profile, err := s.profiles.Update(ctx, id, model.ProfilePatch{
		Name:     params.Name,
		Role:     params.Role,
		Status:   params.Status,
		Avatar:   params.Avatar,
		SchoolID: params.SchoolID,
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, apierror.NewNotFound("user")
	}
	if err != nil {
		s.logger.Error("Lifecycle service: failed to update profile",
			"profile_id", id,
			"error", err.Error())
		return model.Profile{}, apierror.NewInternal(fmt.Errorf("failed to update profile: %w", err))
	}

	if profile.Role == model.RoleProfessional && params.SchoolID != nil {
		if err := s.teachers.UpdateSchool(ctx, id, *params.SchoolID); err != nil {
			s.logger.Warn("Lifecycle service: failed to update teacher school",
				"profile_id", id,
				"school_id", *params.SchoolID,
				"error", err.Error())
		}
	}

	return profile, nil
}

// Delete removes a user and resolves every row that references it. Each
// cleanup step is best-effort and recorded in the report; only a failure to
// delete the profile itself is returned as an error. Deleting an unknown id
// succeeds.
func (s *Lifecycle) Delete(ctx context.Context, id uuid.UUID) (model.DeleteReport, error) {
	report := model.DeleteReport{ProfileID: id}

	profile, err := s.profiles.GetByID(ctx, id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		report.Skip("delete teacher link")
		report.Skip("delete profile")
		s.logger.Info("Lifecycle service: user already deleted",
			"profile_id", id)
		return report, nil
	case err != nil:
		report.Record("lookup profile", 0, err)
	}

	link, err := s.teachers.GetByProfileID(ctx, id)
	switch {
	case err == nil:
		report.TeacherID = &link.ID
		s.runCleanup(ctx, &report, model.TeacherCleanupPolicy, link.ID)
		err = s.teachers.Delete(ctx, link.ID)
		report.Record("delete teacher link", single(err), err)
	case errors.Is(err, model.ErrNotFound):
		report.Skip("delete teacher link")
	default:
		report.Record("lookup teacher link", 0, err)
	}

	s.runCleanup(ctx, &report, model.ProfileCleanupPolicy, id)

	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			report.Skip("delete profile")
			return report, nil
		}
		report.Record("delete profile", 0, err)
		s.logger.Error("Lifecycle service: failed to delete profile",
			"profile_id", id,
			"steps_failed", report.Err(),
			"error", err.Error())
		return report, apierror.NewInternal(fmt.Errorf("failed to delete profile: %w", err))
	}
	report.Record("delete profile", 1, nil)

	if key := storedAvatarKey(profile); key != "" && s.avatars != nil {
		err := s.avatars.Delete(ctx, key)
		report.Record("delete avatar", single(err), err)
	}

	if profile.IdentityID != nil && s.opts.DeleteIdentityOnRemove && s.admin != nil {
		err := s.admin.DeleteIdentity(ctx, *profile.IdentityID)
		report.Record("delete identity", single(err), err)
	}

	if report.Partial() {
		s.logger.Warn("Lifecycle service: user deleted with failed cleanup steps",
			"profile_id", id,
			"error", report.Err().Error())
	} else {
		s.logger.Info("Lifecycle service: user deleted",
			"profile_id", id)
	}

	return report, nil
}

func (s *Lifecycle) runCleanup(ctx context.Context, report *model.DeleteReport, policy []model.CleanupRule, ownerID uuid.UUID) {
	for _, rule := range policy {
		var (
			n   int64
			err error
		)
		switch rule.Action {
		case model.CleanupDelete:
			n, err = s.dependents.Delete(ctx, rule.Entity, ownerID)
		case model.CleanupDetach:
			n, err = s.dependents.Detach(ctx, rule.Entity, ownerID)
		default:
			err = fmt.Errorf("unknown cleanup action %q", rule.Action)
		}

		report.Record(fmt.Sprintf("%s %s", rule.Action, rule.Entity), n, err)
		if err != nil {
			s.logger.Warn("Lifecycle service: cleanup step failed",
				"entity", rule.Entity,
				"action", rule.Action,
				"owner_id", ownerID,
				"error", err.Error())
		}
	}
}

func single(err error) int64 {
	if err != nil {
		return 0
	}
	return 1
}

// Get returns a profile by id.
func (s *Lifecycle) Get(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, apierror.NewNotFound("user")
	}
	if err != nil {
		return model.Profile{}, apierror.NewInternal(fmt.Errorf("failed to get profile: %w", err))
	}
	return profile, nil
}

// List returns all profiles ordered by name.
func (s *Lifecycle) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apierror.NewInternal(fmt.Errorf("failed to list profiles: %w", err))
	}
	return profiles, nil
}

// UploadAvatar stores an image and points the profile at it. The previously
// stored avatar is removed.
func (s *Lifecycle) UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, data []byte) (model.Profile, error) {
	if s.avatars == nil {
		return model.Profile{}, apierror.NewAdminUnavailable("avatar storage")
	}

	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return model.Profile{}, apierror.NewValidation("avatar must be a PNG, JPEG, GIF or WebP image")
	}
	if len(data) == 0 {
		return model.Profile{}, apierror.NewValidation("avatar is empty")
	}
	if len(data) > maxAvatarSize {
		return model.Profile{}, apierror.NewValidation("avatar must be at most 2 MiB")
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	key := fmt.Sprintf("%s%s/%s%s", avatarPrefix, profile.ID, uuid.New(), ext)
	if err := s.avatars.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		s.logger.Error("Lifecycle service: failed to upload avatar",
			"profile_id", id,
			"error", err.Error())
		return model.Profile{}, apierror.NewInternal(fmt.Errorf("failed to upload avatar: %w", err))
	}

	updated, err := s.profiles.Update(ctx, id, model.ProfilePatch{Avatar: &key})
	if err != nil {
		if derr := s.avatars.Delete(ctx, key); derr != nil {
			s.logger.Warn("Lifecycle service: failed to remove unused avatar",
				"key", key,
				"error", derr.Error())
		}
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, apierror.NewNotFound("user")
		}
		return model.Profile{}, apierror.NewInternal(fmt.Errorf("failed to save avatar: %w", err))
	}

	if old := storedAvatarKey(profile); old != "" {
		if err := s.avatars.Delete(ctx, old); err != nil {
			s.logger.Warn("Lifecycle service: failed to remove previous avatar",
				"key", old,
				"error", err.Error())
		}
	}

	return updated, nil
}

// AvatarObject is a stored avatar opened for reading. Callers close Body.
type AvatarObject struct {
	Key         string
	ContentType string
	Body        io.ReadCloser
}

// Avatar opens the stored avatar of a profile.
func (s *Lifecycle) Avatar(ctx context.Context, id uuid.UUID) (AvatarObject, error) {
	if s.avatars == nil {
		return AvatarObject{}, apierror.NewAdminUnavailable("avatar storage")
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return AvatarObject{}, err
	}

	key := storedAvatarKey(profile)
	if key == "" {
		return AvatarObject{}, apierror.NewNotFound("avatar")
	}

	body, err := s.avatars.Download(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return AvatarObject{}, apierror.NewNotFound("avatar")
	}
	if err != nil {
		return AvatarObject{}, apierror.NewInternal(fmt.Errorf("failed to download avatar: %w", err))
	}

	return AvatarObject{Key: key, ContentType: contentTypeOf(key), Body: body}, nil
}

// storedAvatarKey returns the object key of an uploaded avatar. Avatars set
// as external URLs are not stored here.
func storedAvatarKey(profile model.Profile) string {
	if profile.Avatar == nil || !strings.HasPrefix(*profile.Avatar, avatarPrefix) {
		return ""
	}
	return *profile.Avatar
}

func contentTypeOf(key string) string {
	for ct, ext := range avatarExtensions {
		if strings.HasSuffix(key, ext) {
			return ct
		}
	}
	return "application/octet-stream"
}

// identityCreationError keeps the provider's message for rejected sign ups
// and hides transport failures behind a generic one.
func identityCreationError(err error) error {
	if msg, ok := model.ProviderMessage(err); ok {
		return apierror.NewIdentityCreationFailed(msg, err)
	}
	return apierror.NewProviderUnavailable(err)
}
