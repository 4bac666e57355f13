package rbac

// Guard evaluates a principal's roles against the statically declared
// requirements table. It holds no state beyond the table and performs no
// I/O: callers load the principal (with roles, permissions, and resources)
// before asking.
type Guard struct {
	registry *Requirements
	logger   Logger
}

// NewGuard creates a Guard over a requirements table
func NewGuard(registry *Requirements) *Guard {
	if registry == nil {
		registry = NewRequirements()
	}
	return &Guard{
		registry: registry,
		logger:   defLogger{},
	}
}

func (g *Guard) WithLogger(logger Logger) *Guard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Authorize decides whether the user may execute the named operation.
// A nil or inactive user is unauthorized before any permission is
// evaluated. Operations with no registered requirements are unprotected.
func (g *Guard) Authorize(user *User, operation string) error {
	required, ok := g.registry.Lookup(operation)
	if !ok {
		return nil
	}

	if err := ensureActivePrincipal(user); err != nil {
		return err
	}

	return g.requireAll(user, operation, required)
}

// RequireAll checks an explicit requirement list without consulting the
// registry. Useful for callers that carry their own declarations.
func (g *Guard) RequireAll(user *User, required ...Requirement) error {
	if err := ensureActivePrincipal(user); err != nil {
		return err
	}
	return g.requireAll(user, "", required)
}

func (g *Guard) requireAll(user *User, operation string, required []Requirement) error {
	if Evaluate(user.Roles, required) {
		return nil
	}

	g.logger.Debug("authorization denied", "user_id", user.ID.String(), "operation", operation)

	metadata := map[string]any{"required": required}
	if operation != "" {
		metadata["operation"] = operation
	}

	// clone so the shared sentinel never carries request metadata
	clone := ErrPermissionDenied.Clone()
	if clone == nil {
		return ErrPermissionDenied
	}
	return clone.WithMetadata(metadata)
}

func ensureActivePrincipal(user *User) error {
	if user == nil {
		return ErrInvalidCredentials
	}
	if !user.IsActive {
		return ErrUserInactive
	}
	return nil
}

var _ Authorizer = (*Guard)(nil)
