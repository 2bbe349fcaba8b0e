package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasFeature(t *testing.T) {
	t.Run("admin carries every flag", func(t *testing.T) {
		flags := []string{
			FeatureViewFinancialReports, FeatureViewAllData, FeatureExportData,
			FeatureManageTeams, FeatureManageUserRoles, FeatureManageSettings,
			FeatureCreateStaff, FeatureDeleteRecords,
		}
		for _, flag := range flags {
			assert.True(t, HasFeature(RoleAdmin, flag), "admin should have %s", flag)
		}
	})

	t.Run("manager gets operational flags only", func(t *testing.T) {
		assert.True(t, HasFeature(RoleManager, FeatureExportData))
		assert.True(t, HasFeature(RoleManager, FeatureViewAllData))
		assert.True(t, HasFeature(RoleManager, FeatureManageTeams))
		assert.True(t, HasFeature(RoleManager, FeatureViewFinancialReports))

		assert.False(t, HasFeature(RoleManager, FeatureManageUserRoles))
		assert.False(t, HasFeature(RoleManager, FeatureManageSettings))
		assert.False(t, HasFeature(RoleManager, FeatureCreateStaff))
		assert.False(t, HasFeature(RoleManager, FeatureDeleteRecords))
	})

	t.Run("staff and customer have no flags", func(t *testing.T) {
		assert.False(t, HasFeature(RoleStaff, FeatureExportData))
		assert.False(t, HasFeature(RoleStaff, FeatureViewAllData))
		assert.False(t, HasFeature(RoleCustomer, FeatureExportData))
	})

	t.Run("unknown flag or zero role is false", func(t *testing.T) {
		assert.False(t, HasFeature(RoleAdmin, "time_travel"))
		assert.False(t, HasFeature("", FeatureExportData))
	})
}
