package rbac

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type SignupMessage struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsActive  bool   `json:"is_active"`
	UseHashid bool   `json:"-"`
}

func (m SignupMessage) Type() string { return "auth.signup" }

func (m SignupMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&m.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&m.Password, validation.Required, validation.Length(8, 100)),
	)
}

type SignupResponse struct {
	Token            string `json:"token"`
	User             *User  `json:"user"`
	VerificationSent bool   `json:"verification_sent"`
}

// SignUp registers a new identity: existence check, password hash, user
// persist, and bearer token issue happen inside one transaction. The
// in-transaction email pre-check only buys a precise error; the unique
// constraint on email is the real guard, so two racing signups resolve
// to one success and one conflict.
func (w *Workflow) SignUp(ctx context.Context, msg SignupMessage) (*SignupResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid signup request")
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	resp := &SignupResponse{}
	var created *User
	var verificationToken string

	err := w.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := w.repo.Users().GetByEmailTx(ctx, tx, msg.Email); err == nil {
			return ErrEmailExists
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing user")
		}

		hash, err := HashPassword(msg.Password, w.cfg.GetBcryptCost())
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return richErr
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		verificationToken, err = NewVerificationToken()
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mint verification token")
		}

		user := &User{
			Username:          msg.Username,
			Email:             msg.Email,
			PasswordHash:      hash,
			IsActive:          msg.IsActive,
			EmailVerified:     false,
			VerificationToken: &verificationToken,
		}

		if msg.UseHashid {
			if id, err := hashid.NewUUID(NormalizeEmail(msg.Email)); err == nil {
				user.ID = id
			}
		}

		if created, err = w.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return err
		}

		token, err := w.tokens.Generate(created.Identity())
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue bearer token")
		}

		resp.Token = token
		return nil
	})

	if err != nil {
		return nil, asRichError(err, "signup transaction failed")
	}

	// Dispatch happens after commit so the transaction never waits on
	// the gateway; the user is durable either way.
	resp.User = created.Public()
	resp.VerificationSent = w.dispatchVerification(ctx, created, verificationToken)

	w.logger.Info("user signed up", "user_id", created.ID.String(), "verification_sent", resp.VerificationSent)

	return resp, nil
}
