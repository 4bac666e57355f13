package rbac

// Requirement is a (resource, action) pair a protected operation demands
type Requirement struct {
	Resource string `json:"resource"`
	Action   Action `json:"action"`
}

// Require is shorthand for building a Requirement
func Require(resource string, action Action) Requirement {
	return Requirement{Resource: resource, Action: action}
}

type grantKey struct {
	resource string
	action   Action
}

// GrantSet is the flattened permission surface of a set of roles
type GrantSet map[grantKey]struct{}

// FlattenGrants reduces roles into the set of (resource, action) pairs
// they grant. Inactive roles, inactive permissions, permissions without a
// loaded resource, and inactive resources contribute nothing.
func FlattenGrants(roles []*Role) GrantSet {
	grants := make(GrantSet)

	for _, role := range roles {
		if role == nil || !role.IsActive {
			continue
		}
		for _, permission := range role.Permissions {
			if permission == nil || !permission.IsActive {
				continue
			}
			if permission.Resource == nil || !permission.Resource.IsActive {
				continue
			}
			grants[grantKey{
				resource: permission.Resource.Name,
				action:   permission.Action,
			}] = struct{}{}
		}
	}

	return grants
}

// Satisfies reports whether the set covers a single requirement, either
// by the exact pair or by manage on the same resource.
func (g GrantSet) Satisfies(required Requirement) bool {
	if _, ok := g[grantKey{resource: required.Resource, action: required.Action}]; ok {
		return true
	}
	_, ok := g[grantKey{resource: required.Resource, action: ActionManage}]
	return ok
}

// SatisfiesAll applies require-all semantics over a requirement list
func (g GrantSet) SatisfiesAll(required []Requirement) bool {
	for _, requirement := range required {
		if !g.Satisfies(requirement) {
			return false
		}
	}
	return true
}

// Evaluate decides whether the principal's roles cover every required
// (resource, action) pair. A single unmet requirement denies: combined
// operations (e.g. reassigning a role's permission) need every listed
// pair.
//
// Pure over its inputs; safe to call concurrently.
func Evaluate(roles []*Role, required []Requirement) bool {
	if len(required) == 0 {
		return true
	}
	if len(roles) == 0 {
		return false
	}
	return FlattenGrants(roles).SatisfiesAll(required)
}
