package rbac

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users exposes narrow, invariant preserving operations over the user
// table. Every write has a Tx variant taking an externally supplied
// handle so workflows control atomicity; the plain variants run against
// the repository's own connection.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	GetByVerificationTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error)
	GetWithRoles(ctx context.Context, id uuid.UUID) (*User, error)
	GetWithRolesTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)

	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)

	AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error
	RemoveRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error

	SetVerificationTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token string) error
	MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// NormalizeEmail fixes the email case policy: addresses are stored and
// compared lower-cased, so uniqueness is effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": NormalizeEmail(email)})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	return a.GetByVerificationTokenTx(ctx, a.db, token)
}

func (a *users) GetByVerificationTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.verification_token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetWithRoles(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.GetWithRolesTx(ctx, a.db, id)
}

// GetWithRolesTx loads the principal with roles, permissions, and
// resources in one explicit relation chain. No implicit traversal: this
// is the only read path that walks the graph.
func (a *users) GetWithRolesTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("Roles").
		Relation("Roles.Permissions").
		Relation("Roles.Permissions.Resource").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

// CreateTx persists a new user. The unique constraints on email and
// username are the true uniqueness guard; violations are translated so
// callers see a conflict, not a driver code.
func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)

	created, err := a.Repository.CreateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUserConflict(err)
	}

	return created, nil
}

func (a *users) Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error) {
	return a.UpdateTx(ctx, a.db, record, criteria...)
}

// UpdateTx keeps the store invariants on the update path too: the email
// case policy and conflict translation apply the same as on create.
func (a *users) UpdateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.UpdateCriteria) (*User, error) {
	if record != nil && record.Email != "" {
		record.Email = NormalizeEmail(record.Email)
	}

	updated, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUserConflict(err)
	}

	return updated, nil
}

func (a *users) AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	_, err := tx.NewInsert().
		Model(&UserRole{UserID: userID, RoleID: roleID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (a *users) RemoveRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*UserRole)(nil)).
		Where("user_id = ?", userID).
		Where("role_id = ?", roleID).
		Exec(ctx)
	return err
}

func (a *users) SetVerificationTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token string) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("verification_token = ?", token).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return translateUserConflict(err)
	}

	return requireAffectedRow(res, id)
}

// MarkVerifiedTx flips email_verified and clears the token in one
// statement, enforcing single use.
func (a *users) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("email_verified = ?", true).
		Set("verification_token = NULL").
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	return requireAffectedRow(res, id)
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func translateUserConflict(err error) error {
	if err == nil || !isUniqueViolation(err) {
		return err
	}

	switch uniqueViolationColumn(err) {
	case "username":
		return ErrUsernameExists
	case "verification_token":
		return ErrTokenInUse
	default:
		return ErrEmailExists
	}
}
