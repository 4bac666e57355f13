package rbac

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Roles manages role records and their permission membership. Permission
// sets are mutated via explicit add/remove, never by silent cascade.
type Roles interface {
	repository.Repository[*Role]

	GetByName(ctx context.Context, name string) (*Role, error)
	GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Role, error)
	GetWithPermissions(ctx context.Context, id uuid.UUID) (*Role, error)
	GetWithPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Role, error)

	Create(ctx context.Context, record *Role, criteria ...repository.InsertCriteria) (*Role, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Role, criteria ...repository.InsertCriteria) (*Role, error)

	Remove(ctx context.Context, id uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error

	AddPermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID uuid.UUID) error
	RemovePermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID uuid.UUID) error
}

type roles struct {
	repository.Repository[*Role]
	db *bun.DB
}

var (
	_ Roles                        = (*roles)(nil)
	_ repository.Repository[*Role] = (*roles)(nil)
)

func NewRolesRepository(db *bun.DB) Roles {
	repo := repository.NewRepository[*Role](db, repository.ModelHandlers[*Role]{
		NewRecord: func() *Role { return &Role{} },
		GetID: func(r *Role) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Role, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &roles{
		Repository: repo,
		db:         db,
	}
}

func (a *roles) GetByName(ctx context.Context, name string) (*Role, error) {
	return a.GetByNameTx(ctx, a.db, name)
}

func (a *roles) GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Role, error) {
	record := &Role{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"name": name})
		}
		return nil, err
	}

	return record, nil
}

func (a *roles) GetWithPermissions(ctx context.Context, id uuid.UUID) (*Role, error) {
	return a.GetWithPermissionsTx(ctx, a.db, id)
}

func (a *roles) GetWithPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Role, error) {
	record := &Role{}
	err := tx.NewSelect().
		Model(record).
		Relation("Permissions").
		Relation("Permissions.Resource").
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

func (a *roles) Create(ctx context.Context, record *Role, criteria ...repository.InsertCriteria) (*Role, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *roles) CreateTx(ctx context.Context, tx bun.IDB, record *Role, criteria ...repository.InsertCriteria) (*Role, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	created, err := a.Repository.CreateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return created, nil
}

func (a *roles) Update(ctx context.Context, record *Role, criteria ...repository.UpdateCriteria) (*Role, error) {
	return a.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *roles) UpdateTx(ctx context.Context, tx bun.IDB, record *Role, criteria ...repository.UpdateCriteria) (*Role, error) {
	updated, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return updated, nil
}

func (a *roles) Remove(ctx context.Context, id uuid.UUID) error {
	return a.RemoveTx(ctx, a.db, id)
}

// RemoveTx tombstones the role. Join rows stay behind for audit; reads
// filter tombstoned roles out via the soft delete clause.
func (a *roles) RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := tx.NewDelete().
		Model((*Role)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	return requireAffectedRow(res, id)
}

func (a *roles) AddPermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID uuid.UUID) error {
	_, err := tx.NewInsert().
		Model(&RolePermission{RoleID: roleID, PermissionID: permissionID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (a *roles) RemovePermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*RolePermission)(nil)).
		Where("role_id = ?", roleID).
		Where("permission_id = ?", permissionID).
		Exec(ctx)
	return err
}
