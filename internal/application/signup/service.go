package signup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-presignup-gate/internal/domain"
)

// DefaultAllowedSuffix is used when no suffixes are configured.
const DefaultAllowedSuffix = "@uga.edu"

// Service decides whether a registration may proceed.
type Service interface {
	// Validate returns a copy of ev with both response flags set, or
	// domain.ErrMissingEmail / domain.ErrDomainNotAllowed. ev is never mutated.
	Validate(ctx context.Context, ev domain.RegistrationEvent) (*domain.RegistrationEvent, error)
	AllowedSuffixes() []string
}

type service struct {
	suffixes []string
	logger   *slog.Logger
}

type ServiceDeps struct {
	// AllowedSuffixes must include the leading '@'. Matching is
	// case-insensitive and anchored at the end of the address.
	AllowedSuffixes []string
	Logger          *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	var suffixes []string
	for _, s := range deps.AllowedSuffixes {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			suffixes = append(suffixes, s)
		}
	}
	if len(suffixes) == 0 {
		suffixes = []string{DefaultAllowedSuffix}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{suffixes: suffixes, logger: logger}
}

func (s *service) Validate(ctx context.Context, ev domain.RegistrationEvent) (*domain.RegistrationEvent, error) {
	s.logger.InfoContext(ctx, "pre-signup trigger invoked",
		"user_pool_id", ev.UserPoolID,
		"user_name", ev.UserName,
		"trigger_source", ev.TriggerSource,
		"email", ev.RequestedEmail,
	)

	if ev.RequestedEmail == "" {
		return nil, domain.ErrMissingEmail
	}
	if !s.allowed(strings.ToLower(ev.RequestedEmail)) {
		return nil, domain.ErrDomainNotAllowed
	}

	out := ev
	out.Response.AutoConfirm = true
	out.Response.AutoVerifyEmail = true

	s.logger.InfoContext(ctx, "signup email validated", "email", ev.RequestedEmail)
	return &out, nil
}

func (s *service) AllowedSuffixes() []string {
	return append([]string(nil), s.suffixes...)
}

func (s *service) allowed(email string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}
