package authz

// Feature flag names. Flags gate UI affordances that don't map 1:1 onto a
// resource/action pair in the matrix.
const (
	FeatureViewFinancialReports = "view_financial_reports" // Revenue dashboards
	FeatureViewAllData          = "view_all_data"          // Cross-record visibility
	FeatureExportData           = "export_data"            // CSV/report export
	FeatureManageTeams          = "manage_teams"           // Team composition changes
	FeatureManageUserRoles      = "manage_user_roles"      // Role assignment (admin only)
	FeatureManageSettings       = "manage_settings"        // Console settings (admin only)
	FeatureCreateStaff          = "create_staff"           // Staff onboarding (admin only)
	FeatureDeleteRecords        = "delete_records"         // Permanent deletion (admin only)
)

var roleFeatures = map[Role]map[string]bool{
	RoleAdmin: {
		FeatureViewFinancialReports: true,
		FeatureViewAllData:          true,
		FeatureExportData:           true,
		FeatureManageTeams:          true,
		FeatureManageUserRoles:      true,
		FeatureManageSettings:       true,
		FeatureCreateStaff:          true,
		FeatureDeleteRecords:        true,
	},
	RoleManager: {
		FeatureViewFinancialReports: true,
		FeatureViewAllData:          true,
		FeatureExportData:           true,
		FeatureManageTeams:          true,
	},
}

// HasFeature reports whether role carries the named feature flag. Unknown
// flags and the zero Role always return false.
func HasFeature(role Role, flag string) bool {
	return roleFeatures[role][flag]
}
