package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-presignup-gate/internal/application/signup"
	"github.com/go-presignup-gate/internal/domain"
	"github.com/go-presignup-gate/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishDecision(ctx context.Context, d *domain.SignupDecision) error {
	return m.Called(ctx, d).Error(0)
}

type mockGate struct{ mock.Mock }

func (m *mockGate) Validate(ctx context.Context, ev domain.RegistrationEvent) (*domain.RegistrationEvent, error) {
	args := m.Called(ctx, ev)
	if out, _ := args.Get(0).(*domain.RegistrationEvent); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGate) AllowedSuffixes() []string {
	return m.Called().Get(0).([]string)
}

// --- builders ---

func newHandler(pub decisionPublisher) *Handler {
	gate := signup.NewService(signup.ServiceDeps{Logger: logger.Nop()})
	return NewHandler(HandlerDeps{
		Gate:      gate,
		Publisher: pub,
		AppName:   "ArchPal",
		Logger:    logger.Nop(),
	})
}

func preSignUp(attrs map[string]string) events.CognitoEventUserPoolsPreSignup {
	var ev events.CognitoEventUserPoolsPreSignup
	ev.Version = "1"
	ev.TriggerSource = "PreSignUp_SignUp"
	ev.Region = "us-east-1"
	ev.UserPoolID = "us-east-1_abc"
	ev.UserName = "dawg"
	ev.Request.UserAttributes = attrs
	return ev
}

// --- Handle ---

func TestHandle_UGAEmail_SetsFlags(t *testing.T) {
	out, err := newHandler(nil).Handle(context.Background(), preSignUp(map[string]string{"email": "student@uga.edu"}))

	require.NoError(t, err)
	assert.True(t, out.Response.AutoConfirmUser)
	assert.True(t, out.Response.AutoVerifyEmail)
	assert.False(t, out.Response.AutoVerifyPhone)
}

func TestHandle_MixedCaseEmail_SetsFlags(t *testing.T) {
	out, err := newHandler(nil).Handle(context.Background(), preSignUp(map[string]string{"email": "Student@UGA.EDU"}))

	require.NoError(t, err)
	assert.True(t, out.Response.AutoConfirmUser)
	assert.True(t, out.Response.AutoVerifyEmail)
}

func TestHandle_OtherDomain_Rejected(t *testing.T) {
	ev := preSignUp(map[string]string{"email": "student@gmail.com"})

	out, err := newHandler(nil).Handle(context.Background(), ev)

	require.Error(t, err)
	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "Only @uga.edu email addresses are allowed to register for ArchPal", err.Error())
	assert.True(t, errors.Is(err, domain.ErrDomainNotAllowed))
	assert.False(t, out.Response.AutoConfirmUser)
	assert.False(t, out.Response.AutoVerifyEmail)
}

func TestHandle_EmptyEmail_Rejected(t *testing.T) {
	_, err := newHandler(nil).Handle(context.Background(), preSignUp(map[string]string{"email": ""}))

	require.Error(t, err)
	assert.Equal(t, "Email address is required", err.Error())
	assert.True(t, errors.Is(err, domain.ErrMissingEmail))
}

func TestHandle_AbsentEmail_Rejected(t *testing.T) {
	_, err := newHandler(nil).Handle(context.Background(), preSignUp(map[string]string{"name": "Hairy Dawg"}))
	assert.ErrorIs(t, err, domain.ErrMissingEmail)

	_, err = newHandler(nil).Handle(context.Background(), preSignUp(nil))
	assert.ErrorIs(t, err, domain.ErrMissingEmail)
}

func TestHandle_RoundTripsOtherFields(t *testing.T) {
	ev := preSignUp(map[string]string{"email": "student@uga.edu", "name": "Hairy"})
	ev.Request.ClientMetadata = map[string]string{"source": "web"}
	ev.Response.AutoVerifyPhone = true

	out, err := newHandler(nil).Handle(context.Background(), ev)

	require.NoError(t, err)
	ev.Response.AutoConfirmUser = true
	ev.Response.AutoVerifyEmail = true
	assert.Equal(t, ev, out)
}

func TestHandle_UnknownGateError_PassesThrough(t *testing.T) {
	g := &mockGate{}
	boom := errors.New("boom")
	g.On("Validate", mock.Anything, mock.Anything).Return(nil, boom)
	h := NewHandler(HandlerDeps{Gate: g, Logger: logger.Nop()})

	_, err := h.Handle(context.Background(), preSignUp(map[string]string{"email": "a@uga.edu"}))

	assert.Equal(t, boom, err)
	g.AssertNotCalled(t, "AllowedSuffixes")
}

func TestHandle_MessageListsConfiguredSuffixes(t *testing.T) {
	g := &mockGate{}
	g.On("Validate", mock.Anything, mock.Anything).Return(nil, domain.ErrDomainNotAllowed)
	g.On("AllowedSuffixes").Return([]string{"@uga.edu", "@alumni.uga.edu"})
	h := NewHandler(HandlerDeps{Gate: g, AppName: "ArchPal", Logger: logger.Nop()})

	_, err := h.Handle(context.Background(), preSignUp(map[string]string{"email": "a@b.com"}))

	assert.EqualError(t, err, "Only @uga.edu or @alumni.uga.edu email addresses are allowed to register for ArchPal")
}

// --- decision publishing ---

func TestHandle_PublishesApprovedDecision(t *testing.T) {
	pub := &mockPublisher{}
	var got *domain.SignupDecision
	pub.On("PublishDecision", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*domain.SignupDecision) }).
		Return(nil)
	h := newHandler(pub)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	_, err := h.Handle(context.Background(), preSignUp(map[string]string{"email": "student@uga.edu"}))

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.OutcomeApproved, got.Outcome)
	assert.Empty(t, got.Reason)
	assert.Equal(t, "student@uga.edu", got.Email)
	assert.Equal(t, "dawg", got.UserName)
	assert.Equal(t, "us-east-1_abc", got.UserPoolID)
	assert.Equal(t, "PreSignUp_SignUp", got.TriggerSource)
	assert.Equal(t, fixed, got.DecidedAt)
	assert.Len(t, got.EventID, 26)
	pub.AssertExpectations(t)
}

func TestHandle_PublishesRejectedDecision(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("PublishDecision", mock.Anything, mock.MatchedBy(func(d *domain.SignupDecision) bool {
		return d.Outcome == domain.OutcomeRejected && d.Reason == domain.ErrDomainNotAllowed.Error()
	})).Return(nil)

	_, err := newHandler(pub).Handle(context.Background(), preSignUp(map[string]string{"email": "x@gmail.com"}))

	require.Error(t, err)
	pub.AssertExpectations(t)
}

func TestHandle_PublishFailure_DoesNotChangeOutcome(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("PublishDecision", mock.Anything, mock.Anything).Return(errors.New("sns down"))

	out, err := newHandler(pub).Handle(context.Background(), preSignUp(map[string]string{"email": "student@uga.edu"}))

	require.NoError(t, err)
	assert.True(t, out.Response.AutoConfirmUser)
	pub.AssertNumberOfCalls(t, "PublishDecision", 1)
}

// --- wire format ---

func TestHandle_CognitoJSON(t *testing.T) {
	raw := `{
		"version": "1",
		"region": "us-east-1",
		"userPoolId": "us-east-1_abc",
		"userName": "dawg",
		"callerContext": {"awsSdkVersion": "aws-sdk-unknown-unknown", "clientId": "client"},
		"triggerSource": "PreSignUp_SignUp",
		"request": {"userAttributes": {"email": "Student@UGA.EDU"}, "validationData": null},
		"response": {"autoConfirmUser": false, "autoVerifyEmail": false, "autoVerifyPhone": false}
	}`
	var ev events.CognitoEventUserPoolsPreSignup
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))

	out, err := newHandler(nil).Handle(context.Background(), ev)
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	var resp struct {
		Response map[string]bool `json:"response"`
	}
	require.NoError(t, json.Unmarshal(b, &resp))
	assert.Equal(t, map[string]bool{
		"autoConfirmUser": true,
		"autoVerifyEmail": true,
		"autoVerifyPhone": false,
	}, resp.Response)
}
