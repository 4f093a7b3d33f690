package cli

import (
	"fmt"

	errs "github.com/jrsteele09/go-taskassign/internal/errors"
)

// userMessage maps a classified error to the message shown to the user. The
// corrective action differs per class (fix input vs retry vs re-login), so
// the wording stays distinct for each.
func userMessage(err error) error {
	switch {
	case errs.Is(err, errs.ErrInvalidCredentials):
		return fmt.Errorf("invalid email or password")
	case errs.Is(err, errs.ErrSessionExpired):
		return fmt.Errorf("your session has expired - please log in again")
	case errs.Is(err, errs.ErrPermissionDenied):
		return fmt.Errorf("you do not have permission to do that")
	case errs.Is(err, errs.ErrLoginInFlight):
		return fmt.Errorf("a login is already in progress")
	case errs.Is(err, errs.ErrNotFound):
		return fmt.Errorf("not found")
	case errs.Is(err, errs.ErrNetworkUnavailable):
		return fmt.Errorf("could not reach the server - check your connection and try again")
	case errs.Is(err, errs.ErrServer):
		return fmt.Errorf("the server reported an error - try again later")
	default:
		return err
	}
}
