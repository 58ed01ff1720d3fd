// Package validation provides input validation for account fields.
package validation

import (
	"errors"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

var (
	ErrUsernameInvalid = errors.New("Username must be 3-30 characters (letters, digits, _ . -)")
	ErrEmailInvalid    = errors.New("Email address is invalid")
)

// ValidateUsername checks username format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrUsernameInvalid
	}
	return nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}
