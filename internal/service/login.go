package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/logger"
	"github.com/vinculopei/vinculo-server/internal/model"
)

// Account is an authorized profile with the areas it may open.
type Account struct {
	Profile     model.Profile
	Permissions model.Permissions
}

// LoginResult is a successful login.
type LoginResult struct {
	Session model.Session
	Account
}

// Login authenticates against the identity provider and then authorizes
// the identity against its profile.
type Login struct {
	profiles    model.ProfileStore
	identity    model.IdentityProvider
	contactHint string
	logger      *logger.Logger
}

func NewLogin(profiles model.ProfileStore, identity model.IdentityProvider, contactHint string, logger *logger.Logger) *Login {
	return &Login{
		profiles:    profiles,
		identity:    identity,
		contactHint: contactHint,
		logger:      logger,
	}
}

// Authenticate signs in on a client of its own. When the profile check
// fails after the provider accepted the credentials, the new session is
// signed out before the error is returned.
func (s *Login) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, apierror.NewValidation("email and password are required")
	}

	client := s.identity.Isolated()

	session, err := client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return LoginResult{}, s.classifySignInFailure(ctx, email, err)
	}

	profile, err := s.profiles.GetByIdentityID(ctx, session.Identity.ID)

	var denial *apierror.Error
	switch {
	case errors.Is(err, model.ErrNotFound):
		s.logger.Warn("Login service: identity has no profile",
			"identity_id", session.Identity.ID,
			"email", email)
		denial = apierror.NewOrphanedIdentity(s.contactHint)
	case err != nil:
		s.logger.Error("Login service: failed to get profile by identity",
			"identity_id", session.Identity.ID,
			"error", err.Error())
		s.signOut(ctx, client, session.Identity.ID)
		return LoginResult{}, apierror.NewInternal(fmt.Errorf("failed to get profile by identity: %w", err))
	case !profile.Active():
		s.logger.Info("Login service: inactive profile",
			"profile_id", profile.ID)
		denial = apierror.NewInactiveAccount()
	}

	if denial != nil {
		if denial.ForcesSignOut() {
			s.signOut(ctx, client, session.Identity.ID)
		}
		return LoginResult{}, denial
	}

	s.logger.Info("Login service: user signed in",
		"profile_id", profile.ID,
		"role", profile.Role)

	return LoginResult{
		Session: session,
		Account: Account{Profile: profile, Permissions: model.PermissionsFor(profile.Role)},
	}, nil
}

func (s *Login) classifySignInFailure(ctx context.Context, email string, err error) error {
	if !errors.Is(err, model.ErrInvalidCredentials) {
		msg, ok := model.ProviderMessage(err)
		if !ok {
			s.logger.Error("Login service: identity provider unavailable",
				"email", email,
				"error", err.Error())
			return apierror.NewProviderUnavailable(err)
		}
		s.logger.Info("Login service: provider rejected sign in",
			"email", email,
			"error", err.Error())
		return apierror.NewAuthenticationFailed(msg, err)
	}

	_, lookupErr := s.profiles.GetByEmail(ctx, email)
	switch {
	case lookupErr == nil:
		return apierror.NewWrongPassword()
	case errors.Is(lookupErr, model.ErrNotFound):
		return apierror.NewUnknownAccount(s.contactHint)
	default:
		s.logger.Error("Login service: failed to get profile by email",
			"email", email,
			"error", lookupErr.Error())
		return apierror.NewInternal(fmt.Errorf("failed to get profile by email: %w", lookupErr))
	}
}

func (s *Login) signOut(ctx context.Context, client model.IdentityProvider, identityID uuid.UUID) {
	if err := client.SignOut(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("Login service: failed to sign out denied session",
			"identity_id", identityID,
			"error", err.Error())
	}
}

// Logout revokes the session the access token belongs to.
func (s *Login) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return apierror.NewUnauthenticated("missing access token")
	}

	if err := s.identity.WithSession(model.Session{AccessToken: accessToken}).SignOut(ctx); err != nil {
		s.logger.Error("Login service: failed to sign out",
			"error", err.Error())
		return apierror.NewInternal(fmt.Errorf("failed to sign out: %w", err))
	}
	return nil
}

// Me returns the account of an authenticated identity.
func (s *Login) Me(ctx context.Context, identityID uuid.UUID) (Account, error) {
	profile, err := s.profiles.GetByIdentityID(ctx, identityID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return Account{}, apierror.NewOrphanedIdentity(s.contactHint)
	case err != nil:
		return Account{}, apierror.NewInternal(fmt.Errorf("failed to get profile by identity: %w", err))
	case !profile.Active():
		return Account{}, apierror.NewInactiveAccount()
	}

	return Account{Profile: profile, Permissions: model.PermissionsFor(profile.Role)}, nil
}
