package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Callers use errors.Is so transports can map them without string matching.
var (
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
)

// Registration rejections. Both are terminal for the signup attempt.
var (
	ErrMissingEmail     = fmt.Errorf("email address is required: %w", ErrBadRequest)
	ErrDomainNotAllowed = fmt.Errorf("email domain not allowed: %w", ErrForbidden)
)
