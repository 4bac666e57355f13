package rbac

import (
	"fmt"
	"sort"
)

// Requirements maps operation identifiers to the (resource, action) pairs
// they demand. Build the table once at startup, read it on every request.
type Requirements struct {
	table map[string][]Requirement
}

// NewRequirements creates an empty requirements table
func NewRequirements() *Requirements {
	return &Requirements{
		table: make(map[string][]Requirement),
	}
}

// Register declares the requirements for an operation. Registering the
// same operation twice replaces the previous declaration.
func (r *Requirements) Register(operation string, required ...Requirement) *Requirements {
	r.table[operation] = append([]Requirement(nil), required...)
	return r
}

// Lookup returns the declared requirements for an operation. Operations
// never registered return ok=false and are treated as unprotected.
func (r *Requirements) Lookup(operation string) ([]Requirement, bool) {
	required, ok := r.table[operation]
	return required, ok
}

// MustLookup panics for unregistered operations. Use it at startup to
// assert wiring, not on the request path.
func (r *Requirements) MustLookup(operation string) []Requirement {
	required, ok := r.Lookup(operation)
	if !ok {
		panic(fmt.Sprintf("rbac: operation %q has no registered requirements", operation))
	}
	return required
}

// Operations returns the registered operation identifiers, sorted
func (r *Requirements) Operations() []string {
	operations := make([]string, 0, len(r.table))
	for operation := range r.table {
		operations = append(operations, operation)
	}
	sort.Strings(operations)
	return operations
}
