package authz

// softDeletable is the fixed set of resources supporting reversible archival.
var softDeletable = map[Resource]bool{
	ResourceBookings:        true,
	ResourceCustomers:       true,
	ResourceTeams:           true,
	ResourceServicePackages: true,
}

// SupportsSoftDelete reports whether resource supports reversible archival.
func SupportsSoftDelete(resource Resource) bool {
	return softDeletable[resource]
}

// CanSoftDelete reports whether role may archive resource. Archival is an
// operational recovery action open to both privileged roles, but only on
// resources that actually support it.
func CanSoftDelete(role Role, resource Resource) bool {
	if !softDeletable[resource] {
		return false
	}
	return role == RoleAdmin || role == RoleManager
}

// CanRestore reports whether role may un-archive a soft-deleted record.
func CanRestore(role Role) bool {
	return role == RoleAdmin || role == RoleManager
}

// CanPermanentlyDelete reports whether role may irreversibly delete a record.
// Admin-exclusive regardless of the matrix's delete action: a manager can
// never hard-delete even where the general delete check would pass.
func CanPermanentlyDelete(role Role) bool {
	return role == RoleAdmin
}
