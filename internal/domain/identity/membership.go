package identity

import (
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

// LegacyRole is the closed role enum carried by memberships created before
// custom roles existed. Memberships with a custom role assigned keep the
// legacy value for backward compatibility, but it no longer contributes to
// permission resolution once roleID is set.
type LegacyRole string

const (
	LegacyRoleAdmin   LegacyRole = "admin"
	LegacyRoleManager LegacyRole = "manager"
	LegacyRoleSales   LegacyRole = "sales"
	LegacyRoleSupport LegacyRole = "support"
	LegacyRoleUser    LegacyRole = "user"
)

func (r LegacyRole) String() string { return string(r) }

func (r LegacyRole) IsValid() bool {
	switch r {
	case LegacyRoleAdmin, LegacyRoleManager, LegacyRoleSales, LegacyRoleSupport, LegacyRoleUser:
		return true
	default:
		return false
	}
}

// Membership links a user to a tenant. Exactly one row exists per
// (user, tenant) pair. Ownership is a hard override: an owner always has
// full access within the tenant regardless of role contents.
type Membership struct {
	id         uint
	userID     uint
	tenantID   uint
	legacyRole LegacyRole
	roleID     *uint
	isOwner    bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewMembership creates a membership with a legacy role and no custom role.
func NewMembership(userID, tenantID uint, legacyRole LegacyRole, isOwner bool) (*Membership, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !legacyRole.IsValid() {
		return nil, fmt.Errorf("invalid legacy role: %s", legacyRole)
	}

	now := biztime.NowUTC()
	return &Membership{
		userID:     userID,
		tenantID:   tenantID,
		legacyRole: legacyRole,
		isOwner:    isOwner,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructMembership reconstructs a membership from persistence.
func ReconstructMembership(
	membershipID, userID, tenantID uint,
	legacyRole LegacyRole,
	roleID *uint,
	isOwner bool,
	createdAt, updatedAt time.Time,
) (*Membership, error) {
	if membershipID == 0 {
		return nil, fmt.Errorf("membership ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !legacyRole.IsValid() {
		return nil, fmt.Errorf("invalid legacy role: %s", legacyRole)
	}
	if roleID != nil && *roleID == 0 {
		return nil, fmt.Errorf("role ID cannot be zero when set")
	}

	return &Membership{
		id:         membershipID,
		userID:     userID,
		tenantID:   tenantID,
		legacyRole: legacyRole,
		roleID:     roleID,
		isOwner:    isOwner,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (m *Membership) ID() uint               { return m.id }
func (m *Membership) UserID() uint           { return m.userID }
func (m *Membership) TenantID() uint         { return m.tenantID }
func (m *Membership) LegacyRole() LegacyRole { return m.legacyRole }
func (m *Membership) RoleID() *uint          { return m.roleID }
func (m *Membership) IsOwner() bool          { return m.isOwner }
func (m *Membership) CreatedAt() time.Time   { return m.createdAt }
func (m *Membership) UpdatedAt() time.Time   { return m.updatedAt }

// SetID sets the membership ID (only for persistence layer use).
func (m *Membership) SetID(membershipID uint) error {
	if m.id != 0 {
		return fmt.Errorf("membership ID is already set")
	}
	if membershipID == 0 {
		return fmt.Errorf("membership ID cannot be zero")
	}
	m.id = membershipID
	return nil
}

// AssignRole attaches a custom role. The custom role strictly overrides the
// legacy role during permission resolution.
func (m *Membership) AssignRole(roleID uint) error {
	if roleID == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	m.roleID = &roleID
	m.updatedAt = biztime.NowUTC()
	return nil
}

// ClearRole detaches the custom role, falling back to the legacy role.
func (m *Membership) ClearRole() {
	m.roleID = nil
	m.updatedAt = biztime.NowUTC()
}

// ChangeLegacyRole updates the legacy role value.
func (m *Membership) ChangeLegacyRole(role LegacyRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid legacy role: %s", role)
	}
	m.legacyRole = role
	m.updatedAt = biztime.NowUTC()
	return nil
}

// TransferOwnership toggles the owner flag.
func (m *Membership) TransferOwnership(isOwner bool) {
	m.isOwner = isOwner
	m.updatedAt = biztime.NowUTC()
}
