package domain

import (
	"errors"
	"fmt"
)

// AuthError reports a credential rejection from the identity provider.
// It is surfaced inline on the sign-in/sign-up form, never globally.
type AuthError struct {
	Msg string
	Err error
}

func (e AuthError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "invalid credentials"
}

func (e AuthError) Unwrap() error { return e.Err }

// ForbiddenError corresponds to HTTP 403: authenticated but not allowed.
// The gateway handles it globally; callers only see it as a sentinel.
type ForbiddenError struct {
	Path string
	Err  error
}

func (e ForbiddenError) Error() string {
	if e.Path == "" {
		return "forbidden"
	}
	return fmt.Sprintf("forbidden: %s", e.Path)
}

func (e ForbiddenError) Unwrap() error { return e.Err }

// SessionExpiredError corresponds to HTTP 401 on an authenticated call.
type SessionExpiredError struct {
	Path string
	Err  error
}

func (e SessionExpiredError) Error() string {
	if e.Path == "" {
		return "session expired"
	}
	return fmt.Sprintf("session expired: %s", e.Path)
}

func (e SessionExpiredError) Unwrap() error { return e.Err }

// NetworkError wraps a transport failure where no response was received.
// These propagate to the calling screen unmodified.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	if e.Op == "" {
		return "network error"
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// NotFoundError maps HTTP 404 mutation/detail responses.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsSessionExpired(err error) bool {
	var target SessionExpiredError
	return errors.As(err, &target)
}

func IsNetwork(err error) bool {
	var target NetworkError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}
