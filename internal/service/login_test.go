package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/mocks"
	"github.com/vinculopei/vinculo-server/internal/model"
	"github.com/vinculopei/vinculo-server/internal/testutil"
)

const contactHint = "contato@vinculopei.com"

type loginDeps struct {
	profiles *mocks.ProfileStore
	identity *mocks.IdentityProvider
	isolated *mocks.IdentityProvider
}

func newLoginDeps(t *testing.T) loginDeps {
	d := loginDeps{
		profiles: mocks.NewProfileStore(t),
		identity: mocks.NewIdentityProvider(t),
		isolated: mocks.NewIdentityProvider(t),
	}
	return d
}

func (d loginDeps) service() *Login {
	return NewLogin(d.profiles, d.identity, contactHint, testutil.MakeNoopLogger())
}

func TestLogin_Authenticate_Success(t *testing.T) {
	d := newLoginDeps(t)
	identityID := uuid.New()
	session := model.Session{AccessToken: "at", Identity: model.Identity{ID: identityID, Email: "ana@x.com"}}
	profile := model.Profile{ID: uuid.New(), IdentityID: &identityID, Role: model.RoleTutor, Status: model.StatusActive}

	d.identity.On("Isolated").Return(d.isolated).Once()
	d.isolated.On("SignInWithPassword", mock.Anything, "ana@x.com", "abcdef").Return(session, nil).Once()
	d.profiles.On("GetByIdentityID", mock.Anything, identityID).Return(profile, nil).Once()

	res, err := d.service().Authenticate(context.Background(), " Ana@X.com", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, "at", res.Session.AccessToken)
	assert.Equal(t, profile.ID, res.Profile.ID)
	assert.Equal(t, model.PermissionsFor(model.RoleTutor), res.Permissions)
	d.isolated.AssertNotCalled(t, "SignOut", mock.Anything)
}

func TestLogin_Authenticate_InvalidCredentials(t *testing.T) {
	invalid := &providerErr{msg: "Invalid login credentials", kind: model.ErrInvalidCredentials}

	tests := []struct {
		name       string
		email      string
		lookup     model.Profile
		lookupErr  error
		wantKind   apierror.Kind
		wantInText string
	}{
		{
			name:     "known email means wrong password",
			email:    "ana@x.com",
			lookup:   model.Profile{ID: uuid.New()},
			wantKind: apierror.KindWrongPassword,
		},
		{
			name:       "unknown email asks to request a demonstration",
			email:      "ghost@x.com",
			lookupErr:  model.ErrNotFound,
			wantKind:   apierror.KindUnknownAccount,
			wantInText: contactHint,
		},
		{
			name:      "lookup failure",
			email:     "ana@x.com",
			lookupErr: errors.New("db down"),
			wantKind:  apierror.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newLoginDeps(t)
			d.identity.On("Isolated").Return(d.isolated).Once()
			d.isolated.On("SignInWithPassword", mock.Anything, tt.email, "wrong").Return(model.Session{}, invalid).Once()
			d.profiles.On("GetByEmail", mock.Anything, tt.email).Return(tt.lookup, tt.lookupErr).Once()

			_, err := d.service().Authenticate(context.Background(), tt.email, "wrong")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apierror.KindOf(err))
			if tt.wantInText != "" {
				assert.Contains(t, err.Error(), tt.wantInText)
			}
		})
	}
}

func TestLogin_Authenticate_ProviderMessageVerbatim(t *testing.T) {
	d := newLoginDeps(t)

	d.identity.On("Isolated").Return(d.isolated).Once()
	d.isolated.On("SignInWithPassword", mock.Anything, "ana@x.com", "abcdef").
		Return(model.Session{}, &providerErr{msg: "Email not confirmed", kind: model.ErrIdentityUnconfirmed}).Once()

	_, err := d.service().Authenticate(context.Background(), "ana@x.com", "abcdef")
	require.ErrorIs(t, err, apierror.ErrAuthenticationFailed)

	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Email not confirmed", apiErr.Message)
	d.profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Authenticate_ProviderUnreachable(t *testing.T) {
	d := newLoginDeps(t)

	d.identity.On("Isolated").Return(d.isolated).Once()
	d.isolated.On("SignInWithPassword", mock.Anything, "ana@x.com", "abcdef").
		Return(model.Session{}, errors.New(`gotrue token request failed: Post "http://10.0.0.7:9999/auth/v1/token?grant_type=password": dial tcp 10.0.0.7:9999: connect: connection refused`)).Once()

	_, err := d.service().Authenticate(context.Background(), "ana@x.com", "abcdef")
	require.ErrorIs(t, err, apierror.ErrProviderUnavailable)
	assert.NotErrorIs(t, err, apierror.ErrAuthenticationFailed)

	st := apierror.Status(err)
	assert.Equal(t, codes.Unavailable, status.Code(st))
	assert.NotContains(t, status.Convert(st).Message(), "10.0.0.7")
	d.profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Authenticate_DeniedSessionsAreSignedOut(t *testing.T) {
	identityID := uuid.New()
	session := model.Session{AccessToken: "at", Identity: model.Identity{ID: identityID}}

	tests := []struct {
		name       string
		profile    model.Profile
		lookupErr  error
		signOutErr error
		want       error
	}{
		{
			name:      "orphaned identity",
			lookupErr: model.ErrNotFound,
			want:      apierror.ErrOrphanedIdentity,
		},
		{
			name:    "inactive profile",
			profile: model.Profile{ID: uuid.New(), Status: model.StatusInactive},
			want:    apierror.ErrInactiveAccount,
		},
		{
			name:       "sign out failure keeps the denial",
			profile:    model.Profile{ID: uuid.New(), Status: model.StatusInactive},
			signOutErr: errors.New("network"),
			want:       apierror.ErrInactiveAccount,
		},
		{
			name:      "profile lookup failure",
			lookupErr: errors.New("db down"),
			want:      apierror.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newLoginDeps(t)
			d.identity.On("Isolated").Return(d.isolated).Once()
			d.isolated.On("SignInWithPassword", mock.Anything, "ana@x.com", "abcdef").Return(session, nil).Once()
			d.profiles.On("GetByIdentityID", mock.Anything, identityID).Return(tt.profile, tt.lookupErr).Once()
			d.isolated.On("SignOut", mock.Anything).Return(tt.signOutErr).Once()

			_, err := d.service().Authenticate(context.Background(), "ana@x.com", "abcdef")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_Authenticate_OrphanMessageCarriesContact(t *testing.T) {
	d := newLoginDeps(t)
	identityID := uuid.New()

	d.identity.On("Isolated").Return(d.isolated).Once()
	d.isolated.On("SignInWithPassword", mock.Anything, "ana@x.com", "abcdef").
		Return(model.Session{AccessToken: "at", Identity: model.Identity{ID: identityID}}, nil).Once()
	d.profiles.On("GetByIdentityID", mock.Anything, identityID).Return(model.Profile{}, model.ErrNotFound).Once()
	d.isolated.On("SignOut", mock.Anything).Return(nil).Once()

	_, err := d.service().Authenticate(context.Background(), "ana@x.com", "abcdef")
	assert.Contains(t, err.Error(), contactHint)
}

func TestLogin_Authenticate_MissingInput(t *testing.T) {
	d := newLoginDeps(t)

	_, err := d.service().Authenticate(context.Background(), "  ", "abcdef")
	assert.ErrorIs(t, err, apierror.ErrValidation)
	_, err = d.service().Authenticate(context.Background(), "ana@x.com", "")
	assert.ErrorIs(t, err, apierror.ErrValidation)
}

func TestLogin_Logout(t *testing.T) {
	t.Run("revokes the bound session", func(t *testing.T) {
		d := newLoginDeps(t)
		d.identity.On("WithSession", model.Session{AccessToken: "at"}).Return(d.isolated).Once()
		d.isolated.On("SignOut", mock.Anything).Return(nil).Once()

		require.NoError(t, d.service().Logout(context.Background(), "at"))
	})

	t.Run("provider failure", func(t *testing.T) {
		d := newLoginDeps(t)
		d.identity.On("WithSession", mock.Anything).Return(d.isolated).Once()
		d.isolated.On("SignOut", mock.Anything).Return(errors.New("boom")).Once()

		assert.ErrorIs(t, d.service().Logout(context.Background(), "at"), apierror.ErrInternal)
	})

	t.Run("missing token", func(t *testing.T) {
		d := newLoginDeps(t)
		assert.ErrorIs(t, d.service().Logout(context.Background(), ""), apierror.ErrUnauthenticated)
	})
}

func TestLogin_Me(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name    string
		profile model.Profile
		err     error
		want    error
	}{
		{name: "active", profile: model.Profile{ID: uuid.New(), Role: model.RoleAdmin, Status: model.StatusActive}},
		{name: "orphaned", err: model.ErrNotFound, want: apierror.ErrOrphanedIdentity},
		{name: "inactive", profile: model.Profile{Status: model.StatusInactive}, want: apierror.ErrInactiveAccount},
		{name: "store failure", err: errors.New("db down"), want: apierror.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newLoginDeps(t)
			d.profiles.On("GetByIdentityID", mock.Anything, identityID).Return(tt.profile, tt.err).Once()

			account, err := d.service().Me(context.Background(), identityID)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.True(t, account.Permissions.ViewSettings)
		})
	}
}
