// Package authz is the static authorization layer of the console: a
// role/resource/action permission matrix, per-role feature flags, a route
// guard, and the soft-delete policy. Everything in this package is a pure
// lookup against tables built at init time; there is no mutation API and no
// request-scoped state, so every function is safe for concurrent use.
//
// Absence always means denial. An unknown role, resource, action, flag or an
// anonymous caller (the zero Role) resolves to false, never to an error.
package authz

// Role identifies the privilege class of an authenticated caller. The zero
// value means "no role" (anonymous) and is denied everywhere.
type Role string

const (
	RoleAdmin    Role = "admin"    // System administrator
	RoleManager  Role = "manager"  // Operations manager
	RoleStaff    Role = "staff"    // Service staff member
	RoleCustomer Role = "customer" // End customer (portal)
)

// Resource names a protected noun in the console.
type Resource string

const (
	ResourceBookings        Resource = "bookings"
	ResourceCustomers       Resource = "customers"
	ResourceStaff           Resource = "staff"
	ResourceTeams           Resource = "teams"
	ResourceReports         Resource = "reports"
	ResourceSettings        Resource = "settings"
	ResourceUsers           Resource = "users"
	ResourceServicePackages Resource = "service_packages"
)

// Action is a verb applied to a resource. Delete is the permanent kind;
// reversible archival is governed separately by the soft-delete policy.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// rolePrivilege orders roles for convenience comparisons. The matrix is
// authoritative for actual grants; this exists only for AtLeast.
var rolePrivilege = map[Role]int{
	RoleCustomer: 1,
	RoleStaff:    2,
	RoleManager:  3,
	RoleAdmin:    4,
}

// AtLeast reports whether r carries at least the privilege of other.
// Unknown roles (including the zero Role) rank below every known role.
func (r Role) AtLeast(other Role) bool {
	return rolePrivilege[r] >= rolePrivilege[other] && rolePrivilege[r] > 0
}

type actionSet map[Action]bool

func grant(actions ...Action) actionSet {
	s := make(actionSet, len(actions))
	for _, a := range actions {
		s[a] = true
	}
	return s
}

func fullAccess() actionSet {
	return grant(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport)
}

// matrix is the authoritative permission table. A resource missing from a
// role's row denies every action on it. Seeded once at init, never mutated.
var matrix = map[Role]map[Resource]actionSet{
	RoleAdmin: {
		ResourceBookings:        fullAccess(),
		ResourceCustomers:       fullAccess(),
		ResourceStaff:           fullAccess(),
		ResourceTeams:           fullAccess(),
		ResourceReports:         fullAccess(),
		ResourceSettings:        fullAccess(),
		ResourceUsers:           fullAccess(),
		ResourceServicePackages: fullAccess(),
	},
	RoleManager: {
		// Managers never hard-delete: recovery goes through the
		// reversible soft-delete path instead.
		ResourceBookings:        grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourceCustomers:       grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourceTeams:           grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourceStaff:           grant(ActionRead, ActionUpdate),
		ResourceReports:         grant(ActionRead, ActionExport),
		ResourceServicePackages: grant(ActionRead),
	},
	RoleStaff: {
		// Update on bookings means "update own assignments"; ownership
		// scoping is enforced by the caller, not the matrix.
		ResourceBookings:  grant(ActionRead, ActionUpdate),
		ResourceCustomers: grant(ActionRead),
		ResourceStaff:     grant(ActionUpdate),
	},
	RoleCustomer: {
		// Own-record reads only; the portal layer scopes queries to the
		// caller. Everything else is denied.
		ResourceBookings:  grant(ActionRead),
		ResourceCustomers: grant(ActionRead),
	},
}

// CheckPermission reports whether role may perform action on resource.
// The zero Role and any unknown role, resource or action deny.
func CheckPermission(role Role, action Action, resource Resource) bool {
	perms, ok := matrix[role]
	if !ok {
		return false
	}
	return perms[resource][action]
}

// CanDelete is shorthand for the permanent-delete action check.
func CanDelete(role Role, resource Resource) bool {
	return CheckPermission(role, ActionDelete, resource)
}

// PermissionsForRole returns a copy of the role's full per-resource action
// map, for UI introspection (deciding which buttons to render). The copy is
// deep: callers can mutate it freely without touching the matrix.
func PermissionsForRole(role Role) map[Resource]map[Action]bool {
	perms, ok := matrix[role]
	if !ok {
		return map[Resource]map[Action]bool{}
	}

	snapshot := make(map[Resource]map[Action]bool, len(perms))
	for resource, actions := range perms {
		copied := make(map[Action]bool, len(actions))
		for action, allowed := range actions {
			copied[action] = allowed
		}
		snapshot[resource] = copied
	}
	return snapshot
}
