package rbac

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record. The password hash never leaves the store
// boundary: it is excluded from JSON and stripped by Public().
type User struct {
	bun.BaseModel     `bun:"table:users,alias:usr"`
	ID                uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username          string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email             string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash      string     `bun:"password_hash" json:"-"`
	IsActive          bool       `bun:"is_active" json:"is_active"`
	EmailVerified     bool       `bun:"email_verified" json:"email_verified"`
	VerificationToken *string    `bun:"verification_token,nullzero,unique" json:"-"`
	Roles             []*Role    `bun:"m2m:user_roles,join:User=Role" json:"roles,omitempty"`
	CreatedAt         *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt         *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Public returns a copy safe for client-facing output
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	out.VerificationToken = nil
	return &out
}

// Identity adapts the user to the token issuing boundary
func (u *User) Identity() Identity {
	return userIdentity{
		id:       u.ID.String(),
		username: u.Username,
		email:    u.Email,
	}
}

type userIdentity struct {
	id       string
	username string
	email    string
}

func (i userIdentity) ID() string       { return i.id }
func (i userIdentity) Username() string { return i.username }
func (i userIdentity) Email() string    { return i.email }

var _ Identity = userIdentity{}

// Role is a named, shared grouping of permissions. A role with zero
// permissions is valid and denies everything under that role.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string        `bun:"name,notnull,unique" json:"name,omitempty"`
	Description   string        `bun:"description" json:"description,omitempty"`
	IsActive      bool          `bun:"is_active" json:"is_active"`
	Permissions   []*Permission `bun:"m2m:role_permissions,join:Role=Permission" json:"permissions,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Permission is an allowed (resource, action) pair. Name is globally
// unique; the (resource, action) pair is kept unique in practice through
// the naming convention "<action>:<resource>".
type Permission struct {
	bun.BaseModel `bun:"table:permissions,alias:prm"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Action        Action     `bun:"action,notnull" json:"action,omitempty"`
	IsActive      bool       `bun:"is_active" json:"is_active"`
	ResourceID    uuid.UUID  `bun:"resource_id,notnull,type:uuid" json:"resource_id,omitempty"`
	Resource      *Resource  `bun:"rel:belongs-to,join:resource_id=id" json:"resource,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Resource is a named protected entity category (e.g. "users"). It owns
// the permissions defined against it.
type Resource struct {
	bun.BaseModel `bun:"table:resources,alias:res"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string        `bun:"name,notnull,unique" json:"name,omitempty"`
	Description   string        `bun:"description" json:"description,omitempty"`
	IsActive      bool          `bun:"is_active" json:"is_active"`
	Permissions   []*Permission `bun:"rel:has-many,join:id=resource_id" json:"permissions,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// UserRole is the user<->role join row
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	RoleID        uuid.UUID `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	Role          *Role     `bun:"rel:belongs-to,join:role_id=id" json:"-"`
}

// RolePermission is the role<->permission join row
type RolePermission struct {
	bun.BaseModel `bun:"table:role_permissions,alias:rp"`
	RoleID        uuid.UUID   `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	Role          *Role       `bun:"rel:belongs-to,join:role_id=id" json:"-"`
	PermissionID  uuid.UUID   `bun:"permission_id,pk,type:uuid" json:"permission_id,omitempty"`
	Permission    *Permission `bun:"rel:belongs-to,join:permission_id=id" json:"-"`
}

// Models lists every model in dependency order, join tables last. Used by
// RegisterModels and by test schema setup.
func Models() []any {
	return []any{
		(*User)(nil),
		(*Role)(nil),
		(*Permission)(nil),
		(*Resource)(nil),
		(*UserRole)(nil),
		(*RolePermission)(nil),
	}
}

// RegisterModels registers the many-to-many join models with bun. Call it
// once per *bun.DB before loading relations.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*UserRole)(nil), (*RolePermission)(nil))
}
