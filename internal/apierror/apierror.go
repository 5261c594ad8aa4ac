// Package apierror defines the user-facing error taxonomy and its mapping to
// gRPC status codes.
package apierror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind identifies a class of failure.
type Kind string

const (
	KindValidation             Kind = "validation"
	KindDuplicateEmail         Kind = "duplicate_email"
	KindIdentityCreationFailed Kind = "identity_creation_failed"
	KindProfilePersistFailed   Kind = "profile_persist_failed"
	KindWrongPassword          Kind = "wrong_password"
	KindUnknownAccount         Kind = "unknown_account"
	KindOrphanedIdentity       Kind = "orphaned_identity"
	KindInactiveAccount        Kind = "inactive_account"
	KindAuthenticationFailed   Kind = "authentication_failed"
	KindProviderUnavailable    Kind = "provider_unavailable"
	KindNotFound               Kind = "not_found"
	KindUnauthenticated        Kind = "unauthenticated"
	KindPermissionDenied       Kind = "permission_denied"
	KindAdminUnavailable       Kind = "admin_unavailable"
	KindAlreadyInitialized     Kind = "already_initialized"
	KindInternal               Kind = "internal"
)

var grpcCodes = map[Kind]codes.Code{
	KindValidation:             codes.InvalidArgument,
	KindDuplicateEmail:         codes.AlreadyExists,
	KindIdentityCreationFailed: codes.Unavailable,
	KindProfilePersistFailed:   codes.Internal,
	KindWrongPassword:          codes.Unauthenticated,
	KindUnknownAccount:         codes.NotFound,
	KindOrphanedIdentity:       codes.FailedPrecondition,
	KindInactiveAccount:        codes.PermissionDenied,
	KindAuthenticationFailed:   codes.Unauthenticated,
	KindProviderUnavailable:    codes.Unavailable,
	KindNotFound:               codes.NotFound,
	KindUnauthenticated:        codes.Unauthenticated,
	KindPermissionDenied:       codes.PermissionDenied,
	KindAdminUnavailable:       codes.FailedPrecondition,
	KindAlreadyInitialized:     codes.FailedPrecondition,
	KindInternal:               codes.Internal,
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation             = &Error{Kind: KindValidation}
	ErrDuplicateEmail         = &Error{Kind: KindDuplicateEmail}
	ErrIdentityCreationFailed = &Error{Kind: KindIdentityCreationFailed}
	ErrProfilePersistFailed   = &Error{Kind: KindProfilePersistFailed}
	ErrWrongPassword          = &Error{Kind: KindWrongPassword}
	ErrUnknownAccount         = &Error{Kind: KindUnknownAccount}
	ErrOrphanedIdentity       = &Error{Kind: KindOrphanedIdentity}
	ErrInactiveAccount        = &Error{Kind: KindInactiveAccount}
	ErrAuthenticationFailed   = &Error{Kind: KindAuthenticationFailed}
	ErrProviderUnavailable    = &Error{Kind: KindProviderUnavailable}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrUnauthenticated        = &Error{Kind: KindUnauthenticated}
	ErrPermissionDenied       = &Error{Kind: KindPermissionDenied}
	ErrAdminUnavailable       = &Error{Kind: KindAdminUnavailable}
	ErrAlreadyInitialized     = &Error{Kind: KindAlreadyInitialized}
	ErrInternal               = &Error{Kind: KindInternal}
)

// Error is a classified failure. Message is safe to show to end users;
// Err holds the internal cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// GRPCCode returns the status code the kind is reported with.
func (e *Error) GRPCCode() codes.Code {
	if c, ok := grpcCodes[e.Kind]; ok {
		return c
	}
	return codes.Internal
}

// ForcesSignOut reports whether a session must be terminated when this
// error is reported after a successful authentication.
func (e *Error) ForcesSignOut() bool {
	return e.Kind == KindOrphanedIdentity || e.Kind == KindInactiveAccount
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindInternal
}

// Status converts err into a gRPC status error carrying only the
// user-facing message. Errors that already are statuses pass through and
// anything else becomes Internal.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := As(err); ok {
		return status.Error(apiErr.GRPCCode(), apiErr.Message)
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, "internal server error")
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewDuplicateEmail reports an email already held by the named profile.
func NewDuplicateEmail(existingName string) *Error {
	return &Error{Kind: KindDuplicateEmail, Message: fmt.Sprintf("this email is already registered for user %s", existingName)}
}

// NewEmailInUse reports an email the identity provider already knows.
func NewEmailInUse() *Error {
	return &Error{Kind: KindDuplicateEmail, Message: "this email is already used by another user of the system"}
}

func NewIdentityCreationFailed(providerMessage string, err error) *Error {
	return &Error{Kind: KindIdentityCreationFailed, Message: fmt.Sprintf("failed to create account: %s", providerMessage), Err: err}
}

func NewProfilePersistFailed(err error) *Error {
	return &Error{Kind: KindProfilePersistFailed, Message: "failed to save user profile", Err: err}
}

func NewWrongPassword() *Error {
	return &Error{Kind: KindWrongPassword, Message: "incorrect email or password"}
}

func NewUnknownAccount(contactHint string) *Error {
	return &Error{Kind: KindUnknownAccount, Message: fmt.Sprintf("this account does not exist in our system, contact us to request a demonstration: %s", contactHint)}
}

func NewOrphanedIdentity(contactHint string) *Error {
	return &Error{Kind: KindOrphanedIdentity, Message: fmt.Sprintf("account is not configured correctly, contact support to request access: %s", contactHint)}
}

func NewInactiveAccount() *Error {
	return &Error{Kind: KindInactiveAccount, Message: "your account is inactive, contact the administrator to reactivate your access"}
}

// NewAuthenticationFailed carries the identity provider's message verbatim.
func NewAuthenticationFailed(providerMessage string, err error) *Error {
	return &Error{Kind: KindAuthenticationFailed, Message: providerMessage, Err: err}
}

// NewProviderUnavailable reports a failure to reach the identity provider.
func NewProviderUnavailable(err error) *Error {
	return &Error{Kind: KindProviderUnavailable, Message: "identity service is unavailable, try again later", Err: err}
}

func NewNotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewPermissionDenied() *Error {
	return &Error{Kind: KindPermissionDenied, Message: "administrator access is required"}
}

func NewAdminUnavailable(what string) *Error {
	return &Error{Kind: KindAdminUnavailable, Message: fmt.Sprintf("%s is not configured on this server", what)}
}

func NewAlreadyInitialized() *Error {
	return &Error{Kind: KindAlreadyInitialized, Message: "users already exist, bootstrap is only allowed on an empty installation"}
}

func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}
