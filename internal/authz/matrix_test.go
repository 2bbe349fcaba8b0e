package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPermission(t *testing.T) {
	t.Run("admin has full access everywhere", func(t *testing.T) {
		resources := []Resource{
			ResourceBookings, ResourceCustomers, ResourceStaff, ResourceTeams,
			ResourceReports, ResourceSettings, ResourceUsers, ResourceServicePackages,
		}
		actions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport}

		for _, resource := range resources {
			for _, action := range actions {
				assert.True(t, CheckPermission(RoleAdmin, action, resource),
					"admin should be allowed %s on %s", action, resource)
			}
		}
	})

	t.Run("manager cannot delete bookings but can update", func(t *testing.T) {
		assert.False(t, CheckPermission(RoleManager, ActionDelete, ResourceBookings))
		assert.True(t, CheckPermission(RoleManager, ActionUpdate, ResourceBookings))
	})

	t.Run("manager cannot delete any resource", func(t *testing.T) {
		resources := []Resource{
			ResourceBookings, ResourceCustomers, ResourceStaff, ResourceTeams,
			ResourceReports, ResourceSettings, ResourceUsers, ResourceServicePackages,
		}
		for _, resource := range resources {
			assert.False(t, CheckPermission(RoleManager, ActionDelete, resource),
				"manager should never delete %s", resource)
		}
	})

	t.Run("manager create read update export on bookings customers teams", func(t *testing.T) {
		for _, resource := range []Resource{ResourceBookings, ResourceCustomers, ResourceTeams} {
			assert.True(t, CheckPermission(RoleManager, ActionCreate, resource))
			assert.True(t, CheckPermission(RoleManager, ActionRead, resource))
			assert.True(t, CheckPermission(RoleManager, ActionUpdate, resource))
			assert.True(t, CheckPermission(RoleManager, ActionExport, resource))
		}
	})

	t.Run("manager limited on staff", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleManager, ActionRead, ResourceStaff))
		assert.True(t, CheckPermission(RoleManager, ActionUpdate, ResourceStaff))
		assert.False(t, CheckPermission(RoleManager, ActionCreate, ResourceStaff))
		assert.False(t, CheckPermission(RoleManager, ActionExport, ResourceStaff))
	})

	t.Run("manager denied settings entirely", func(t *testing.T) {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport} {
			assert.False(t, CheckPermission(RoleManager, action, ResourceSettings))
		}
	})

	t.Run("manager read only on service packages", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleManager, ActionRead, ResourceServicePackages))
		assert.False(t, CheckPermission(RoleManager, ActionCreate, ResourceServicePackages))
		assert.False(t, CheckPermission(RoleManager, ActionUpdate, ResourceServicePackages))
	})

	t.Run("staff read and update bookings only", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleStaff, ActionRead, ResourceBookings))
		assert.True(t, CheckPermission(RoleStaff, ActionUpdate, ResourceBookings))
		assert.False(t, CheckPermission(RoleStaff, ActionCreate, ResourceBookings))
		assert.False(t, CheckPermission(RoleStaff, ActionDelete, ResourceBookings))
		assert.False(t, CheckPermission(RoleStaff, ActionExport, ResourceBookings))
	})

	t.Run("staff read only customers, no reports, no export", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleStaff, ActionRead, ResourceCustomers))
		assert.False(t, CheckPermission(RoleStaff, ActionUpdate, ResourceCustomers))
		assert.False(t, CheckPermission(RoleStaff, ActionRead, ResourceReports))
		for _, resource := range []Resource{ResourceBookings, ResourceCustomers, ResourceStaff} {
			assert.False(t, CheckPermission(RoleStaff, ActionExport, resource))
		}
	})

	t.Run("staff update own profile only", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleStaff, ActionUpdate, ResourceStaff))
		assert.False(t, CheckPermission(RoleStaff, ActionCreate, ResourceStaff))
		assert.False(t, CheckPermission(RoleStaff, ActionDelete, ResourceStaff))
	})

	t.Run("customer read only on own resources", func(t *testing.T) {
		assert.True(t, CheckPermission(RoleCustomer, ActionRead, ResourceBookings))
		assert.True(t, CheckPermission(RoleCustomer, ActionRead, ResourceCustomers))
		assert.False(t, CheckPermission(RoleCustomer, ActionCreate, ResourceBookings))
		assert.False(t, CheckPermission(RoleCustomer, ActionRead, ResourceReports))
		assert.False(t, CheckPermission(RoleCustomer, ActionRead, ResourceSettings))
		assert.False(t, CheckPermission(RoleCustomer, ActionExport, ResourceBookings))
	})

	t.Run("zero role denied everywhere", func(t *testing.T) {
		assert.False(t, CheckPermission("", ActionRead, ResourceBookings))
		assert.False(t, CheckPermission("", ActionCreate, ResourceSettings))
	})

	t.Run("unknown role resource action deny", func(t *testing.T) {
		assert.False(t, CheckPermission(Role("superuser"), ActionRead, ResourceBookings))
		assert.False(t, CheckPermission(RoleAdmin, Action("approve"), ResourceBookings))
		assert.False(t, CheckPermission(RoleManager, ActionRead, Resource("invoices")))
	})
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(RoleAdmin, ResourceBookings))
	assert.False(t, CanDelete(RoleManager, ResourceBookings))
	assert.False(t, CanDelete(RoleStaff, ResourceBookings))
	assert.False(t, CanDelete("", ResourceBookings))
}

func TestPermissionsForRole(t *testing.T) {
	t.Run("snapshot reflects matrix", func(t *testing.T) {
		perms := PermissionsForRole(RoleManager)
		assert.True(t, perms[ResourceBookings][ActionUpdate])
		assert.False(t, perms[ResourceBookings][ActionDelete])
		assert.NotContains(t, perms, ResourceSettings)
	})

	t.Run("mutating the snapshot does not leak into the matrix", func(t *testing.T) {
		perms := PermissionsForRole(RoleManager)
		perms[ResourceBookings][ActionDelete] = true
		assert.False(t, CheckPermission(RoleManager, ActionDelete, ResourceBookings))
	})

	t.Run("unknown role yields empty map", func(t *testing.T) {
		assert.Empty(t, PermissionsForRole(Role("ghost")))
		assert.Empty(t, PermissionsForRole(""))
	})
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleManager))
	assert.True(t, RoleManager.AtLeast(RoleStaff))
	assert.True(t, RoleStaff.AtLeast(RoleStaff))
	assert.False(t, RoleStaff.AtLeast(RoleManager))
	assert.False(t, Role("").AtLeast(RoleCustomer))
	assert.False(t, Role("ghost").AtLeast(RoleCustomer))
}
