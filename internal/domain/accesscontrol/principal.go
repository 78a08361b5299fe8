package accesscontrol

import (
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
)

// Principal is an authenticated user acting on a tenant. It carries exactly
// the membership facts permission resolution needs; callers must treat a
// super-admin principal as "allow everything" without further lookups.
type Principal struct {
	userID     uint
	tenantID   uint
	superAdmin bool
	owner      bool
	legacyRole identity.LegacyRole
	roleID     *uint
}

// NewSuperAdminPrincipal builds the principal for a super admin. No
// membership is required; tenantID records the target tenant only.
func NewSuperAdminPrincipal(userID, tenantID uint) Principal {
	return Principal{userID: userID, tenantID: tenantID, superAdmin: true}
}

// NewMemberPrincipal builds a principal from a membership row.
func NewMemberPrincipal(m *identity.Membership) (Principal, error) {
	if m == nil {
		return Principal{}, fmt.Errorf("membership is required")
	}
	return Principal{
		userID:     m.UserID(),
		tenantID:   m.TenantID(),
		owner:      m.IsOwner(),
		legacyRole: m.LegacyRole(),
		roleID:     m.RoleID(),
	}, nil
}

func (p Principal) UserID() uint                    { return p.userID }
func (p Principal) TenantID() uint                  { return p.tenantID }
func (p Principal) IsSuperAdmin() bool              { return p.superAdmin }
func (p Principal) IsOwner() bool                   { return p.owner }
func (p Principal) LegacyRole() identity.LegacyRole { return p.legacyRole }
func (p Principal) RoleID() *uint                   { return p.roleID }

// HasCustomRole reports whether a custom role is assigned.
func (p Principal) HasCustomRole() bool { return p.roleID != nil }
