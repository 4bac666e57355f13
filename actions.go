package rbac

// Action is an operation a permission may grant on a resource
type Action string

const (
	// ActionCreate allows creating entities of a resource
	ActionCreate Action = "create"
	// ActionRead allows reading entities of a resource
	ActionRead Action = "read"
	// ActionUpdate allows updating entities of a resource
	ActionUpdate Action = "update"
	// ActionDelete allows deleting entities of a resource
	ActionDelete Action = "delete"
	// ActionManage is the superset action: it authorizes every other
	// action on its resource
	ActionManage Action = "manage"
)

// IsValid checks if the action is one of the predefined valid actions
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage:
		return true
	default:
		return false
	}
}

// Satisfies checks whether a granted action covers the required one.
// manage covers everything on the same resource; every other action only
// covers itself.
func (a Action) Satisfies(required Action) bool {
	if a == ActionManage {
		return true
	}
	return a == required
}

// AllActions returns all predefined actions, manage last
func AllActions() []Action {
	return []Action{
		ActionCreate,
		ActionRead,
		ActionUpdate,
		ActionDelete,
		ActionManage,
	}
}

// CRUDActions returns the four non-wildcard actions
func CRUDActions() []Action {
	return []Action{
		ActionCreate,
		ActionRead,
		ActionUpdate,
		ActionDelete,
	}
}

// ParseAction safely parses a string into an Action type
func ParseAction(raw string) (Action, bool) {
	action := Action(raw)
	return action, action.IsValid()
}
