package rbac_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotifier implements rbac.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, notification rbac.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockTokenService implements rbac.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(identity rbac.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) SignClaims(claims *rbac.JWTClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (rbac.AuthClaims, error) {
	args := m.Called(token)
	if claims := args.Get(0); claims != nil {
		return claims.(rbac.AuthClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestWorkflow_SignUpNotifiesWithVerificationTemplate(t *testing.T) {
	repo := setupManager(t)

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.MatchedBy(func(n rbac.Notification) bool {
		return n.Kind == rbac.TemplateVerification && n.To == "alice@example.com"
	})).Return(nil).Once()

	workflow := rbac.NewWorkflow(repo, testConfig()).WithNotifier(notifier)

	resp, err := workflow.SignUp(context.Background(), signupMessage())
	require.NoError(t, err)
	assert.True(t, resp.VerificationSent)

	notifier.AssertExpectations(t)
}

func TestWorkflow_SignInUsesInjectedTokenService(t *testing.T) {
	workflow, _, _ := newWorkflow(t)

	_, err := workflow.SignUp(context.Background(), signupMessage())
	require.NoError(t, err)

	tokens := new(MockTokenService)
	tokens.On("Generate", mock.Anything).Return("stub-token", nil).Once()

	resp, err := workflow.WithTokenService(tokens).SignIn(context.Background(), rbac.CredentialsMessage{
		Email:    "alice@example.com",
		Password: "securePassword123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "stub-token", resp.Token)

	tokens.AssertExpectations(t)
}
