// Package rbac provides role-based access control plus the transactional
// identity lifecycle around it: signup, signin, email verification, and
// verification resend.
//
// Authorization model:
//   - Permissions are (resource, action) pairs. Actions form a closed set
//     (create, read, update, delete, manage); manage is the superset and
//     covers every other action on its resource.
//   - Users hold roles, roles hold permissions, permissions belong to a
//     resource. Evaluate flattens a principal's loaded roles into a grant
//     set and applies require-all semantics over the requested pairs.
//     Inactive roles, permissions, and resources contribute no grants.
//   - Requirements is a static operation -> requirements table built once
//     at startup; Guard reads it on every request. Operations never
//     registered are unprotected.
//
// Identity lifecycle:
//   - Workflow executes each operation as a single transaction against
//     the RepositoryManager. SignUp persists the user, hashes the
//     password with bcrypt, mints a single-use verification token, and
//     issues a JWT; the verification email is dispatched only after
//     commit and a delivery failure never fails the operation.
//   - VerifyEmail consumes the token exactly once: marking the address
//     verified and clearing the token happen in one statement.
//   - Notifier is the outbound delivery boundary. The workflow hands it
//     typed send requests and never inspects rendered content.
//
// Seeder bootstraps an empty database with the core resources, the full
// permission grid, an admin role, and one verified admin user in a
// single transaction.
package rbac
