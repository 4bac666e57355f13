package rbac

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

type CredentialsMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m CredentialsMessage) Type() string { return "auth.signin" }

func (m CredentialsMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Email, validation.Required, is.Email),
		validation.Field(&m.Password, validation.Required),
	)
}

type SigninResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SignIn authenticates credentials and issues a bearer token. Missing
// user, missing password hash, and hash mismatch all collapse into the
// same unauthorized error so callers cannot enumerate accounts.
func (w *Workflow) SignIn(ctx context.Context, msg CredentialsMessage) (*SigninResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid signin request")
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	user, err := w.repo.Users().GetByEmail(ctx, msg.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user for signin")
	}

	if user.PasswordHash == "" {
		w.logger.Warn("user has no password hash set", "user_id", user.ID.String())
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(msg.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := w.tokens.Generate(user.Identity())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue bearer token")
	}

	w.logger.Debug("user signed in", "user_id", user.ID.String())

	return &SigninResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}
