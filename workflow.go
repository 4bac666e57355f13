package rbac

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// workflowTimeout bounds every workflow transaction
const workflowTimeout = 10 * time.Second

// Workflow orchestrates the identity lifecycle operations: signup,
// signin, email verification, and verification resend. Each call is one
// complete state machine executed against the store; multi-step writes
// run inside a single transaction that is always released, commit or
// rollback, on every exit path.
type Workflow struct {
	repo     RepositoryManager
	tokens   TokenService
	notifier Notifier
	cfg      Config
	logger   Logger
	debug    bool
}

// NewWorkflow wires a Workflow from the repository manager and config.
// The token service is derived from config; override it with
// WithTokenService when sharing one across components.
func NewWorkflow(repo RepositoryManager, cfg Config) *Workflow {
	return &Workflow{
		repo: repo,
		cfg:  cfg,
		tokens: NewTokenService(
			[]byte(cfg.GetSigningKey()),
			cfg.GetTokenExpiration(),
			cfg.GetIssuer(),
			cfg.GetAudience(),
			defLogger{},
		),
		notifier: noopNotifier{},
		logger:   defLogger{},
	}
}

func (w *Workflow) WithLogger(logger Logger) *Workflow {
	if logger != nil {
		w.logger = logger
	}
	return w
}

func (w *Workflow) WithNotifier(notifier Notifier) *Workflow {
	w.notifier = normalizeNotifier(notifier)
	return w
}

func (w *Workflow) WithTokenService(tokens TokenService) *Workflow {
	if tokens != nil {
		w.tokens = tokens
	}
	return w
}

func (w *Workflow) WithDebug(debug bool) *Workflow {
	w.debug = debug
	return w
}

// TokenService returns the token service used by this workflow
func (w *Workflow) TokenService() TokenService {
	return w.tokens
}

// dispatchVerification sends the verification email outside the
// transaction boundary. Delivery failure is reported as false, never as
// an error: the committed user must be able to request the email again.
func (w *Workflow) dispatchVerification(ctx context.Context, user *User, token string) bool {
	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", w.cfg.GetFrontendURL(), token)

	notification := Notification{
		To:   user.Email,
		Kind: TemplateVerification,
		Context: map[string]any{
			"username":         user.Username,
			"verification_url": verificationURL,
		},
	}

	if w.debug {
		w.logger.Debug("dispatching verification notification %s", print.MaybePrettyJSON(notification))
	}

	if err := w.notifier.Send(ctx, notification); err != nil {
		w.logger.Error("failed to send verification email", "email", user.Email, "error", err)
		return false
	}

	return true
}

// asRichError keeps category information intact across the transaction
// boundary; anything unclassified becomes an internal failure.
func asRichError(err error, message string) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message)
}
