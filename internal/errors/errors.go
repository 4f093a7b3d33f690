package errors

import (
	"errors"
	"fmt"
)

// Classified errors for the task-assignment client. Callers match with Is
// and decide the corrective action: fix input, retry, or re-login.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginInFlight      = errors.New("login already in progress")
	ErrSessionExpired     = errors.New("session expired")
	ErrPermissionDenied   = errors.New("permission denied")

	// Transport errors
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrServer             = errors.New("server error")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")

	// Local persistence errors
	ErrStorage = errors.New("storage error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
