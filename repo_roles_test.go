package rbac_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-rbac"
	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesRepository_CreateAndGetByName(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	created, err := repo.Roles().Create(ctx, &rbac.Role{
		Name:        "editor",
		Description: "Can edit content",
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.Roles().GetByName(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.Roles().GetByName(ctx, "missing")
	assert.True(t, repository.IsRecordNotFound(err))
}

func TestRolesRepository_NameConflict(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	_, err := repo.Roles().Create(ctx, &rbac.Role{Name: "editor", IsActive: true})
	require.NoError(t, err)

	_, err = repo.Roles().Create(ctx, &rbac.Role{Name: "editor", IsActive: true})
	assert.ErrorIs(t, err, rbac.ErrNameExists)
}

func TestRolesRepository_RenameCollision(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	_, err := repo.Roles().Create(ctx, &rbac.Role{Name: "admin", IsActive: true})
	require.NoError(t, err)

	editor, err := repo.Roles().Create(ctx, &rbac.Role{Name: "editor", IsActive: true})
	require.NoError(t, err)

	_, err = repo.Roles().Update(ctx, &rbac.Role{ID: editor.ID, Name: "admin"},
		repository.UpdateByID(editor.ID.String()))
	assert.ErrorIs(t, err, rbac.ErrNameExists)
	assert.True(t, rbac.IsConflict(err))
}

func TestRolesRepository_PermissionMembership(t *testing.T) {
	repo, db := setupManagerDB(t)
	ctx := context.Background()

	resource, err := repo.Resources().Create(ctx, &rbac.Resource{Name: "posts", IsActive: true})
	require.NoError(t, err)

	permission, err := repo.Permissions().Create(ctx, &rbac.Permission{
		Name:       rbac.PermissionName(rbac.ActionRead, "posts"),
		Action:     rbac.ActionRead,
		IsActive:   true,
		ResourceID: resource.ID,
	})
	require.NoError(t, err)

	role, err := repo.Roles().Create(ctx, &rbac.Role{Name: "viewer", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, repo.Roles().AddPermissionTx(ctx, db, role.ID, permission.ID))
	// adding twice is a no-op, not an error
	require.NoError(t, repo.Roles().AddPermissionTx(ctx, db, role.ID, permission.ID))

	loaded, err := repo.Roles().GetWithPermissions(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Permissions, 1)
	assert.Equal(t, rbac.ActionRead, loaded.Permissions[0].Action)
	require.NotNil(t, loaded.Permissions[0].Resource)
	assert.Equal(t, "posts", loaded.Permissions[0].Resource.Name)

	require.NoError(t, repo.Roles().RemovePermissionTx(ctx, db, role.ID, permission.ID))

	loaded, err = repo.Roles().GetWithPermissions(ctx, role.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Permissions)
}

func TestRolesRepository_RemoveIsSoftDelete(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	role, err := repo.Roles().Create(ctx, &rbac.Role{Name: "editor", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, repo.Roles().Remove(ctx, role.ID))

	// tombstoned roles no longer resolve by name
	_, err = repo.Roles().GetByName(ctx, "editor")
	assert.True(t, repository.IsRecordNotFound(err))

	// removing again reports not found
	err = repo.Roles().Remove(ctx, role.ID)
	assert.True(t, repository.IsRecordNotFound(err))
}

func TestPermissionsRepository_RejectsUnknownAction(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	resource, err := repo.Resources().Create(ctx, &rbac.Resource{Name: "posts", IsActive: true})
	require.NoError(t, err)

	_, err = repo.Permissions().Create(ctx, &rbac.Permission{
		Name:       "publish:posts",
		Action:     rbac.Action("publish"),
		ResourceID: resource.ID,
	})
	assert.True(t, rbac.IsValidation(err))
}

func TestPermissionsRepository_RenameCollision(t *testing.T) {
	repo := setupManager(t)
	ctx := context.Background()

	resource, err := repo.Resources().Create(ctx, &rbac.Resource{Name: "posts", IsActive: true})
	require.NoError(t, err)

	_, err = repo.Permissions().Create(ctx, &rbac.Permission{
		Name:       rbac.PermissionName(rbac.ActionRead, "posts"),
		Action:     rbac.ActionRead,
		IsActive:   true,
		ResourceID: resource.ID,
	})
	require.NoError(t, err)

	update, err := repo.Permissions().Create(ctx, &rbac.Permission{
		Name:       rbac.PermissionName(rbac.ActionUpdate, "posts"),
		Action:     rbac.ActionUpdate,
		IsActive:   true,
		ResourceID: resource.ID,
	})
	require.NoError(t, err)

	_, err = repo.Permissions().Update(ctx, &rbac.Permission{
		ID:   update.ID,
		Name: rbac.PermissionName(rbac.ActionRead, "posts"),
	}, repository.UpdateByID(update.ID.String()))
	assert.ErrorIs(t, err, rbac.ErrNameExists)
	assert.True(t, rbac.IsConflict(err))

	// action changes stay inside the closed set on update too
	_, err = repo.Permissions().Update(ctx, &rbac.Permission{
		ID:     update.ID,
		Action: rbac.Action("publish"),
	}, repository.UpdateByID(update.ID.String()))
	assert.True(t, rbac.IsValidation(err))
}

func TestPermissionsRepository_RemoveDetachesRoles(t *testing.T) {
	repo, db := setupManagerDB(t)
	ctx := context.Background()

	resource, err := repo.Resources().Create(ctx, &rbac.Resource{Name: "posts", IsActive: true})
	require.NoError(t, err)

	permission, err := repo.Permissions().Create(ctx, &rbac.Permission{
		Name:       rbac.PermissionName(rbac.ActionRead, "posts"),
		Action:     rbac.ActionRead,
		IsActive:   true,
		ResourceID: resource.ID,
	})
	require.NoError(t, err)

	role, err := repo.Roles().Create(ctx, &rbac.Role{Name: "viewer", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, repo.Roles().AddPermissionTx(ctx, db, role.ID, permission.ID))

	require.NoError(t, repo.Permissions().Remove(ctx, permission.ID))

	loaded, err := repo.Roles().GetWithPermissions(ctx, role.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Permissions)
}
