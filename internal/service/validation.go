package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/model"
)

const minPasswordLength = 6

// Whitespace includes the Unicode separators, not only ASCII \s.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

// NormalizeEmail trims and lowercases an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apierror.NewValidation("email is required")
	}
	if !emailPattern.MatchString(email) {
		return apierror.NewValidation("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apierror.NewValidation("password must be at least 6 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apierror.NewValidation("name is required")
	}
	return nil
}

func validateRole(role model.Role) error {
	if !role.Valid() {
		return apierror.NewValidation("invalid user role")
	}
	return nil
}

func validateStatus(status model.Status) error {
	if status != model.StatusActive && status != model.StatusInactive {
		return apierror.NewValidation("invalid user status")
	}
	return nil
}

func validateNewUser(name, email, password string, role model.Role) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	return validateRole(role)
}
