package accesscontrol

import "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"

// System role codes. The legacy membership role enum maps onto these through
// an explicit table maintained alongside the permission catalog; there is no
// string transformation between the two fields.
const (
	SystemRoleAdmin   = "admin"
	SystemRoleManager = "manager"
	SystemRoleSales   = "sales"
	SystemRoleSupport = "support"
	SystemRoleUser    = "user"
)

var legacyRoleCodes = map[identity.LegacyRole]string{
	identity.LegacyRoleAdmin:   SystemRoleAdmin,
	identity.LegacyRoleManager: SystemRoleManager,
	identity.LegacyRoleSales:   SystemRoleSales,
	identity.LegacyRoleSupport: SystemRoleSupport,
	identity.LegacyRoleUser:    SystemRoleUser,
}

// SystemRoleCodeFor returns the system role code backing a legacy membership
// role. The second return is false for unknown legacy values, which resolve
// to an empty permission set.
func SystemRoleCodeFor(legacy identity.LegacyRole) (string, bool) {
	code, ok := legacyRoleCodes[legacy]
	return code, ok
}
