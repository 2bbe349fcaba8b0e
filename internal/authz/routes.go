package authz

import "strings"

// routeRoles maps a path prefix to the roles allowed past it. Matching is
// longest-prefix-wins. Paths with no configured prefix are public to any
// authenticated role; the zero Role is denied everywhere, configured or not.
var routeRoles = map[string][]Role{
	"/settings":         {RoleAdmin},
	"/users":            {RoleAdmin},
	"/reports":          {RoleAdmin, RoleManager},
	"/staff":            {RoleAdmin, RoleManager},
	"/teams":            {RoleAdmin, RoleManager},
	"/customers":        {RoleAdmin, RoleManager, RoleStaff},
	"/service-packages": {RoleAdmin, RoleManager},
}

// CanAccessRoute reports whether role may enter path. An unconfigured path is
// allowed for any non-zero role: public-by-default for the authenticated,
// denied for the anonymous. This asymmetry is deliberate.
func CanAccessRoute(role Role, path string) bool {
	if role == "" {
		return false
	}

	var matched []Role
	matchedLen := -1
	for prefix, roles := range routeRoles {
		if strings.HasPrefix(path, prefix) && len(prefix) > matchedLen {
			matched = roles
			matchedLen = len(prefix)
		}
	}

	if matchedLen < 0 {
		return true
	}

	for _, allowed := range matched {
		if allowed == role {
			return true
		}
	}
	return false
}
