package lambda

import (
	"errors"
	"strings"

	"github.com/go-presignup-gate/internal/domain"
)

// RejectionError is returned to Cognito when a signup is refused. Cognito
// shows Message to the user; Err keeps the domain kind for errors.Is.
type RejectionError struct {
	Message string
	Err     error
}

func (e *RejectionError) Error() string { return e.Message }

func (e *RejectionError) Unwrap() error { return e.Err }

// rejectionMessage turns a gate failure into the text shown at signup.
func rejectionMessage(err error, suffixes []string, appName string) string {
	switch {
	case errors.Is(err, domain.ErrMissingEmail):
		return "Email address is required"
	case errors.Is(err, domain.ErrDomainNotAllowed):
		return "Only " + strings.Join(suffixes, " or ") + " email addresses are allowed to register for " + appName
	default:
		return err.Error()
	}
}
