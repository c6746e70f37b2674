package lambda

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-presignup-gate/internal/domain"
	"github.com/go-presignup-gate/internal/pkg/id"
)

const emailAttribute = "email"

type gate interface {
	Validate(ctx context.Context, ev domain.RegistrationEvent) (*domain.RegistrationEvent, error)
	AllowedSuffixes() []string
}

type decisionPublisher interface {
	PublishDecision(ctx context.Context, d *domain.SignupDecision) error
}

// Handler adapts Cognito PreSignUp events to the signup gate.
type Handler struct {
	gate      gate
	publisher decisionPublisher
	appName   string
	logger    *slog.Logger
	now       func() time.Time
}

type HandlerDeps struct {
	Gate gate
	// Publisher is optional; nil disables decision publishing.
	Publisher decisionPublisher
	AppName   string
	Logger    *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		gate:      deps.Gate,
		publisher: deps.Publisher,
		appName:   deps.AppName,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle is the Lambda entry point. On success the returned event carries
// autoConfirmUser and autoVerifyEmail; on rejection the error is a
// *RejectionError and the event is returned unchanged.
func (h *Handler) Handle(ctx context.Context, ev events.CognitoEventUserPoolsPreSignup) (events.CognitoEventUserPoolsPreSignup, error) {
	reg := toRegistration(ev)

	out, err := h.gate.Validate(ctx, reg)
	if err != nil {
		h.publish(ctx, reg, err)
		if errors.Is(err, domain.ErrMissingEmail) || errors.Is(err, domain.ErrDomainNotAllowed) {
			return ev, &RejectionError{
				Message: rejectionMessage(err, h.gate.AllowedSuffixes(), h.appName),
				Err:     err,
			}
		}
		return ev, err
	}
	h.publish(ctx, reg, nil)

	ev.Response.AutoConfirmUser = out.Response.AutoConfirm
	ev.Response.AutoVerifyEmail = out.Response.AutoVerifyEmail
	return ev, nil
}

func (h *Handler) publish(ctx context.Context, reg domain.RegistrationEvent, rejectErr error) {
	if h.publisher == nil {
		return
	}
	now := h.now().UTC()
	d := &domain.SignupDecision{
		EventID:       id.NewAt(now),
		UserPoolID:    reg.UserPoolID,
		UserName:      reg.UserName,
		TriggerSource: reg.TriggerSource,
		Email:         reg.RequestedEmail,
		Outcome:       domain.OutcomeApproved,
		DecidedAt:     now,
	}
	if rejectErr != nil {
		d.Outcome = domain.OutcomeRejected
		d.Reason = rejectErr.Error()
	}
	if err := h.publisher.PublishDecision(ctx, d); err != nil {
		h.logger.WarnContext(ctx, "failed to publish signup decision",
			"event_id", d.EventID, "outcome", d.Outcome, "err", err)
	}
}

func toRegistration(ev events.CognitoEventUserPoolsPreSignup) domain.RegistrationEvent {
	return domain.RegistrationEvent{
		UserPoolID:     ev.UserPoolID,
		UserName:       ev.UserName,
		TriggerSource:  ev.TriggerSource,
		Region:         ev.Region,
		RequestedEmail: ev.Request.UserAttributes[emailAttribute],
	}
}
