package accesscontrol

import (
	"testing"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionSet(t *testing.T) {
	s := NewPermissionSet("leads.read", "leads.write")

	assert.True(t, s.Contains("leads.read"))
	assert.False(t, s.Contains("leads.delete"))
	assert.True(t, s.ContainsAny("leads.delete", "leads.write"))
	assert.False(t, s.ContainsAny("deals.read"))
	assert.Equal(t, []string{"leads.read", "leads.write"}, s.Codes())

	empty := EmptyPermissionSet()
	assert.False(t, empty.Contains("leads.read"))
	assert.Zero(t, empty.Len())
}

func TestUniversalPermissionSet(t *testing.T) {
	u := UniversalPermissionSet()

	assert.True(t, u.IsUniversal())
	assert.True(t, u.Contains("anything.at.all"))
	assert.True(t, u.ContainsAny("x", "y"))
}

func TestAuthorize(t *testing.T) {
	perms := NewPermissionSet("leads.read")

	d := Authorize(perms, "leads.read")
	assert.True(t, d.Allowed())
	assert.Equal(t, "allowed", d.Message())

	d = Authorize(perms, "leads.delete")
	assert.False(t, d.Allowed())
	assert.Equal(t, DenyMissingPermission, d.Reason())
	assert.Equal(t, "missing permission: leads.delete", d.Message())
}

func TestAuthorizeAny(t *testing.T) {
	perms := NewPermissionSet("deals.read")

	assert.True(t, AuthorizeAny(perms, "leads.read", "deals.read").Allowed())

	d := AuthorizeAny(perms, "leads.read", "leads.write")
	assert.False(t, d.Allowed())
	assert.Equal(t, DenyNoMatchingPermissions, d.Reason())
}

func TestPrincipal(t *testing.T) {
	sa := NewSuperAdminPrincipal(1, 2)
	assert.True(t, sa.IsSuperAdmin())
	assert.Equal(t, uint(2), sa.TenantID())

	m, err := identity.NewMembership(3, 2, identity.LegacyRoleSales, false)
	require.NoError(t, err)
	require.NoError(t, m.AssignRole(5))

	p, err := NewMemberPrincipal(m)
	require.NoError(t, err)
	assert.False(t, p.IsSuperAdmin())
	assert.False(t, p.IsOwner())
	assert.True(t, p.HasCustomRole())
	require.NotNil(t, p.RoleID())
	assert.Equal(t, uint(5), *p.RoleID())
	assert.Equal(t, identity.LegacyRoleSales, p.LegacyRole())

	_, err = NewMemberPrincipal(nil)
	assert.Error(t, err)
}
