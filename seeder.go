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

// SeedResources are the entity categories bootstrapped on first run.
// They cover the system's own administration surface.
var SeedResources = []string{"users", "roles", "permissions", "resources"}

// AdminRoleName is the role the bootstrap admin is granted
const AdminRoleName = "admin"

// SeedMessage carries the bootstrap admin credentials
type SeedMessage struct {
	AdminUsername string `json:"admin_username"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (m SeedMessage) Type() string { return "auth.seed" }

func (m SeedMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.AdminUsername, validation.Required, validation.Length(3, 100)),
		validation.Field(&m.AdminEmail, validation.Required, is.Email),
		validation.Field(&m.AdminPassword, validation.Required, validation.Length(8, 100)),
	)
}

// SeedResult reports what the bootstrap created
type SeedResult struct {
	Resources   int    `json:"resources"`
	Permissions int    `json:"permissions"`
	AdminRoleID string `json:"admin_role_id"`
	AdminUserID string `json:"admin_user_id"`
}

// Seeder bootstraps an empty database: the core resources, the full
// permission grid over them, an admin role holding every permission, and
// one verified admin user. The whole bootstrap is a single transaction,
// so a half-seeded database cannot exist.
type Seeder struct {
	repo   RepositoryManager
	cfg    Config
	logger Logger
}

func NewSeeder(repo RepositoryManager, cfg Config) *Seeder {
	return &Seeder{
		repo:   repo,
		cfg:    cfg,
		logger: defLogger{},
	}
}

func (s *Seeder) WithLogger(logger Logger) *Seeder {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Run executes the bootstrap. Running against an already seeded database
// returns a conflict; nothing is modified.
func (s *Seeder) Run(ctx context.Context, msg SeedMessage) (*SeedResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid seed request")
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	result := &SeedResult{}

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Roles().GetByNameTx(ctx, tx, AdminRoleName); err == nil {
			if clone := ErrNameExists.Clone(); clone != nil {
				return clone.WithMetadata(map[string]any{"role": AdminRoleName})
			}
			return ErrNameExists
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing admin role")
		}

		role, err := s.repo.Roles().CreateTx(ctx, tx, &Role{
			Name:        AdminRoleName,
			Description: "Full access to every resource",
			IsActive:    true,
		})
		if err != nil {
			return err
		}

		for _, name := range SeedResources {
			resource, err := s.repo.Resources().CreateTx(ctx, tx, &Resource{
				Name:        name,
				Description: fmt.Sprintf("System %s", name),
				IsActive:    true,
			})
			if err != nil {
				return err
			}
			result.Resources++

			for _, action := range AllActions() {
				permission, err := s.repo.Permissions().CreateTx(ctx, tx, &Permission{
					Name:        PermissionName(action, name),
					Description: fmt.Sprintf("Allows %s on %s", action, name),
					Action:      action,
					IsActive:    true,
					ResourceID:  resource.ID,
				})
				if err != nil {
					return err
				}
				result.Permissions++

				if err := s.repo.Roles().AddPermissionTx(ctx, tx, role.ID, permission.ID); err != nil {
					return err
				}
			}
		}

		hash, err := HashPassword(msg.AdminPassword, s.cfg.GetBcryptCost())
		if err != nil {
			return asRichError(err, "failed to hash admin password")
		}

		admin, err := s.repo.Users().CreateTx(ctx, tx, &User{
			Username:      msg.AdminUsername,
			Email:         msg.AdminEmail,
			PasswordHash:  hash,
			IsActive:      true,
			EmailVerified: true,
		})
		if err != nil {
			return err
		}

		if err := s.repo.Users().AssignRoleTx(ctx, tx, admin.ID, role.ID); err != nil {
			return err
		}

		result.AdminRoleID = role.ID.String()
		result.AdminUserID = admin.ID.String()
		return nil
	})

	if err != nil {
		return nil, asRichError(err, "seed transaction failed")
	}

	s.logger.Info("database seeded",
		"resources", result.Resources,
		"permissions", result.Permissions,
		"admin_user_id", result.AdminUserID,
	)

	return result, nil
}

// PermissionName builds the canonical "<action>:<resource>" permission
// name used by the bootstrap grid.
func PermissionName(action Action, resource string) string {
	return fmt.Sprintf("%s:%s", action, resource)
}
