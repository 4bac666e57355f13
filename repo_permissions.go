package rbac

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Permissions manages permission records. A permission belongs to exactly
// one resource; its action must come from the closed set.
type Permissions interface {
	repository.Repository[*Permission]

	GetByName(ctx context.Context, name string) (*Permission, error)
	GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Permission, error)

	Create(ctx context.Context, record *Permission, criteria ...repository.InsertCriteria) (*Permission, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Permission, criteria ...repository.InsertCriteria) (*Permission, error)

	Remove(ctx context.Context, id uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type permissions struct {
	repository.Repository[*Permission]
	db *bun.DB
}

var (
	_ Permissions                        = (*permissions)(nil)
	_ repository.Repository[*Permission] = (*permissions)(nil)
)

func NewPermissionsRepository(db *bun.DB) Permissions {
	repo := repository.NewRepository[*Permission](db, repository.ModelHandlers[*Permission]{
		NewRecord: func() *Permission { return &Permission{} },
		GetID: func(p *Permission) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Permission, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &permissions{
		Repository: repo,
		db:         db,
	}
}

func (a *permissions) GetByName(ctx context.Context, name string) (*Permission, error) {
	return a.GetByNameTx(ctx, a.db, name)
}

func (a *permissions) GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Permission, error) {
	record := &Permission{}
	err := tx.NewSelect().
		Model(record).
		Relation("Resource").
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

func (a *permissions) Create(ctx context.Context, record *Permission, criteria ...repository.InsertCriteria) (*Permission, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *permissions) CreateTx(ctx context.Context, tx bun.IDB, record *Permission, criteria ...repository.InsertCriteria) (*Permission, error) {
	if record != nil {
		if !record.Action.IsValid() {
			if clone := ErrInvalidAction.Clone(); clone != nil {
				return nil, clone.WithMetadata(map[string]any{"action": string(record.Action)})
			}
			return nil, ErrInvalidAction
		}
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}

	created, err := a.Repository.CreateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return created, nil
}

func (a *permissions) Update(ctx context.Context, record *Permission, criteria ...repository.UpdateCriteria) (*Permission, error) {
	return a.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *permissions) UpdateTx(ctx context.Context, tx bun.IDB, record *Permission, criteria ...repository.UpdateCriteria) (*Permission, error) {
	if record != nil && record.Action != "" && !record.Action.IsValid() {
		if clone := ErrInvalidAction.Clone(); clone != nil {
			return nil, clone.WithMetadata(map[string]any{"action": string(record.Action)})
		}
		return nil, ErrInvalidAction
	}

	updated, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)
	if err != nil {
		return nil, translateUniqueViolation(err, ErrNameExists)
	}

	return updated, nil
}

func (a *permissions) Remove(ctx context.Context, id uuid.UUID) error {
	return a.RemoveTx(ctx, a.db, id)
}

func (a *permissions) RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*RolePermission)(nil)).
		Where("permission_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	res, err := tx.NewDelete().
		Model((*Permission)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	return requireAffectedRow(res, id)
}
