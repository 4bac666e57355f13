package rbac

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Resources manages the protected entity categories. Removing a resource
// is the only cascade in the model: it takes the resource's permissions
// (and their role memberships) with it.
type Resources interface {
	repository.Repository[*Resource]

	GetByName(ctx context.Context, name string) (*Resource, error)
	GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Resource, error)
	GetWithPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Resource, error)

	Create(ctx context.Context, record *Resource, criteria ...repository.InsertCriteria) (*Resource, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Resource, criteria ...repository.InsertCriteria) (*Resource, error)

	Remove(ctx context.Context, id uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type resources struct {
	repository.Repository[*Resource]
	db *bun.DB
}

var (
	_ Resources                        = (*resources)(nil)
	_ repository.Repository[*Resource] = (*resources)(nil)
)

func NewResourcesRepository(db *bun.DB) Resources {
	repo := repository.NewRepository[*Resource](db, repository.ModelHandlers[*Resource]{
		NewRecord: func() *Resource { return &Resource{} },
		GetID: func(r *Resource) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Resource, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &resources{
		Repository: repo,
		db:         db,
	}
}

func (a *resources) GetByName(ctx context.Context, name string) (*Resource, error) {
	return a.GetByNameTx(ctx, a.db, name)
}

func (a *resources) GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Resource, error) {
	record := &Resource{}
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

func (a *resources) GetWithPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Resource, error) {
	record := &Resource{}
	err := tx.NewSelect().
		Model(record).
		Relation("Permissions").
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

func (a *resources) Create(ctx context.Context, record *Resource, criteria ...repository.InsertCriteria) (*Resource, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *resources) CreateTx(ctx context.Context, tx bun.IDB, record *Resource, criteria ...repository.InsertCriteria) (*Resource, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	created, err := a.Repository.CreateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return created, nil
}

func (a *resources) Update(ctx context.Context, record *Resource, criteria ...repository.UpdateCriteria) (*Resource, error) {
	return a.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *resources) UpdateTx(ctx context.Context, tx bun.IDB, record *Resource, criteria ...repository.UpdateCriteria) (*Resource, error) {
	updated, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return updated, nil
}

func (a *resources) Remove(ctx context.Context, id uuid.UUID) error {
	return a.RemoveTx(ctx, a.db, id)
}

// RemoveTx deletes the resource and, resource-scoped only, its
// permissions plus their role membership rows.
func (a *resources) RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	permissionIDs := tx.NewSelect().
		Model((*Permission)(nil)).
		Column("id").
		Where("resource_id = ?", id)

	if _, err := tx.NewDelete().
		Model((*RolePermission)(nil)).
		Where("permission_id IN (?)", permissionIDs).
		Exec(ctx); err != nil {
		return err
	}

	if _, err := tx.NewDelete().
		Model((*Permission)(nil)).
		Where("resource_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	res, err := tx.NewDelete().
		Model((*Resource)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	return requireAffectedRow(res, id)
}
