package rbac

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// VerifyEmail consumes a verification token: the holder is marked
// verified and the token cleared in the same transaction, so a token
// works exactly once. Returns the frontend URL the caller should
// redirect to on success.
func (w *Workflow) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", goerrors.New("verification token is required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	var user *User

	err := w.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := w.repo.Users().GetByVerificationTokenTx(ctx, tx, token)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrInvalidVerificationToken
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up verification token")
		}

		if err := w.repo.Users().MarkVerifiedTx(ctx, tx, found.ID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mark email verified")
		}

		user = found
		return nil
	})

	if err != nil {
		return "", asRichError(err, "email verification failed")
	}

	w.logger.Info("email verified", "user_id", user.ID.String())

	return fmt.Sprintf("%s/auth/verification-success", w.cfg.GetFrontendURL()), nil
}

type ResendMessage struct {
	Email string `json:"email"`
}

func (m ResendMessage) Type() string { return "auth.resend_verification" }

func (m ResendMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Email, validation.Required, is.Email),
	)
}

type ResendResponse struct {
	Sent bool `json:"sent"`
}

// ResendVerification re-dispatches the verification email. An account
// that still holds a token reuses it, so earlier emails stay valid; an
// unverified account without one gets a fresh token minted in the same
// transaction.
func (w *Workflow) ResendVerification(ctx context.Context, msg ResendMessage) (*ResendResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid resend request")
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	var user *User
	var verificationToken string

	err := w.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := w.repo.Users().GetByEmailTx(ctx, tx, msg.Email)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrAccountNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user for resend")
		}

		if found.EmailVerified {
			return ErrAlreadyVerified
		}

		if found.VerificationToken != nil && *found.VerificationToken != "" {
			verificationToken = *found.VerificationToken
		} else {
			verificationToken, err = NewVerificationToken()
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mint verification token")
			}

			if err := w.repo.Users().SetVerificationTokenTx(ctx, tx, found.ID, verificationToken); err != nil {
				return asRichError(err, "failed to store verification token")
			}
		}

		user = found
		return nil
	})

	if err != nil {
		return nil, asRichError(err, "verification resend failed")
	}

	sent := w.dispatchVerification(ctx, user, verificationToken)

	w.logger.Info("verification resend processed", "user_id", user.ID.String(), "sent", sent)

	return &ResendResponse{Sent: sent}, nil
}
