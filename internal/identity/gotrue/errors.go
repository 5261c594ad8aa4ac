package gotrue

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vinculopei/vinculo-server/internal/model"
)

// errorCodes maps provider error codes to model errors. Classification goes
// through this table first; message fragments are only a fallback for
// provider versions that do not send error_code.
var errorCodes = map[string]error{
	"user_already_exists": model.ErrIdentityAlreadyRegistered,
	"email_exists":        model.ErrIdentityAlreadyRegistered,
	"invalid_credentials": model.ErrInvalidCredentials,
	"unexpected_failure":  model.ErrIdentityHookFailed,
	"email_not_confirmed": model.ErrIdentityUnconfirmed,
}

var messageFallbacks = []struct {
	fragment string
	err      error
}{
	{fragment: "already registered", err: model.ErrIdentityAlreadyRegistered},
	{fragment: "database error", err: model.ErrIdentityHookFailed},
	{fragment: "invalid login credentials", err: model.ErrInvalidCredentials},
	{fragment: "email not confirmed", err: model.ErrIdentityUnconfirmed},
}

// ProviderError is a normalized failure response from the identity provider.
type ProviderError struct {
	Operation string
	Status    int
	Code      string
	Message   string
	// Identity is set when the provider reported an identity despite failing.
	Identity *model.Identity

	kind error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gotrue %s failed (%d %s): %s", e.Operation, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gotrue %s failed (%d): %s", e.Operation, e.Status, e.Message)
}

// ProviderMessage returns the message as reported by the provider.
func (e *ProviderError) ProviderMessage() string {
	return e.Message
}

// Unwrap returns the model error the response was classified as.
func (e *ProviderError) Unwrap() error {
	return e.kind
}

type errorBody struct {
	Code             any          `json:"code"`
	ErrorCode        string       `json:"error_code"`
	Msg              string       `json:"msg"`
	Message          string       `json:"message"`
	Error            string       `json:"error"`
	ErrorDescription string       `json:"error_description"`
	User             *userPayload `json:"user"`
}

func (b errorBody) code() string {
	if b.ErrorCode != "" {
		return b.ErrorCode
	}
	if s, ok := b.Code.(string); ok && s != "" {
		return s
	}
	return b.Error
}

func (b errorBody) message() string {
	for _, m := range []string{b.Msg, b.Message, b.ErrorDescription, b.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func parseProviderError(operation string, status int, data []byte) *ProviderError {
	pe := &ProviderError{Operation: operation, Status: status}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		pe.Code = body.code()
		pe.Message = body.message()
		if body.User != nil {
			if identity, err := body.User.identity(); err == nil {
				pe.Identity = &identity
			}
		}
	}
	if pe.Message == "" {
		pe.Message = http.StatusText(status)
	}

	pe.kind = classify(pe.Code, pe.Message)
	return pe
}

func classify(code, message string) error {
	if err, ok := errorCodes[code]; ok {
		return err
	}
	lower := strings.ToLower(message)
	for _, fb := range messageFallbacks {
		if strings.Contains(lower, fb.fragment) {
			return fb.err
		}
	}
	return model.ErrIdentityProvider
}
