// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// General errors
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrUnauthorized        = errors.New("unauthorized")

	// User-related errors
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrInvalidInput)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginRequired      = errors.New("login required")

	// Organization-related errors
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrNoOrganization       = errors.New("user has no organization")
	ErrMembershipNotFound   = fmt.Errorf("membership %w", ErrNotFound)
	ErrInvalidRole          = fmt.Errorf("%w: invalid role", ErrInvalidInput)

	// Invite-related errors
	ErrExpiredOrUsedInvite = errors.New("invalid or expired invite")

	// Entry-related errors
	ErrEntryNotFound    = fmt.Errorf("entry %w", ErrNotFound)
	ErrEntryNotEditable = fmt.Errorf("%w: entry is not a draft", ErrInvalidInput)

	// Tab-related errors
	ErrTabNotFound  = fmt.Errorf("tab %w", ErrNotFound)
	ErrTabNameTaken = fmt.Errorf("%w: tab name already exists", ErrInvalidInput)

	// Profile-related errors
	ErrProfileItemNotFound = fmt.Errorf("profile item %w", ErrNotFound)

	// Storage errors
	ErrStorageDisabled = errors.New("image storage is not configured")
)

// FieldErrors carries per-field validation messages back to the caller.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrInvalidInput
}

// Add records a message for field, keeping the first one.
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// OrNil returns nil when no field failed.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// LoginRequiredError tells the caller to sign in and come back to LoginURL.
type LoginRequiredError struct {
	LoginURL string
}

func (e *LoginRequiredError) Error() string {
	return ErrLoginRequired.Error()
}

func (e *LoginRequiredError) Unwrap() error {
	return ErrLoginRequired
}
