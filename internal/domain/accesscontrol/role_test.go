package accesscontrol

import (
	"testing"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenantRole(t *testing.T) {
	role, err := NewTenantRole(3, "Field Sales", "outbound team", []string{"leads.read", "leads.write", "leads.read"})

	require.NoError(t, err)
	assert.NotEmpty(t, role.SID())
	require.NotNil(t, role.TenantID())
	assert.Equal(t, uint(3), *role.TenantID())
	assert.Equal(t, "field_sales", role.Code())
	assert.False(t, role.IsSystem())
	assert.Equal(t, []string{"leads.read", "leads.write"}, role.Permissions(), "duplicates removed, order kept")
	assert.True(t, role.CanDelete())
}

func TestNewTenantRole_InvalidInput(t *testing.T) {
	_, err := NewTenantRole(0, "Sales", "", nil)
	assert.Error(t, err)

	_, err = NewTenantRole(3, "", "", nil)
	assert.Error(t, err)
}

func TestNewSystemRole_Immutable(t *testing.T) {
	role, err := NewSystemRole(SystemRoleSales, "Sales", []string{"leads.read", "deals.read"}, false)
	require.NoError(t, err)

	assert.True(t, role.IsSystem())
	assert.Nil(t, role.TenantID())
	assert.False(t, role.CanDelete())
	assert.ErrorIs(t, role.Rename("Other"), ErrSystemRoleImmutable)
	assert.ErrorIs(t, role.ReplacePermissions([]string{"x"}), ErrSystemRoleImmutable)
}

func TestRole_BelongsToTenant(t *testing.T) {
	system, err := NewSystemRole(SystemRoleUser, "User", nil, true)
	require.NoError(t, err)
	assert.True(t, system.BelongsToTenant(1))
	assert.True(t, system.BelongsToTenant(99))

	tenantRole, err := NewTenantRole(7, "Ops", "", nil)
	require.NoError(t, err)
	assert.True(t, tenantRole.BelongsToTenant(7))
	assert.False(t, tenantRole.BelongsToTenant(8), "tenant roles never leak across tenants")
}

func TestRole_ReplacePermissions(t *testing.T) {
	role, err := NewTenantRole(3, "Support", "", []string{"tickets.read"})
	require.NoError(t, err)

	require.NoError(t, role.ReplacePermissions([]string{"tickets.read", "tickets.write", " ", "tickets.write"}))
	assert.Equal(t, []string{"tickets.read", "tickets.write"}, role.Permissions())
}

func TestSystemRoleCodeFor(t *testing.T) {
	tests := []struct {
		legacy identity.LegacyRole
		code   string
	}{
		{identity.LegacyRoleAdmin, SystemRoleAdmin},
		{identity.LegacyRoleManager, SystemRoleManager},
		{identity.LegacyRoleSales, SystemRoleSales},
		{identity.LegacyRoleSupport, SystemRoleSupport},
		{identity.LegacyRoleUser, SystemRoleUser},
	}
	for _, tt := range tests {
		code, ok := SystemRoleCodeFor(tt.legacy)
		assert.True(t, ok)
		assert.Equal(t, tt.code, code)
	}

	_, ok := SystemRoleCodeFor(identity.LegacyRole("Admin"))
	assert.False(t, ok, "mapping is an exact table lookup, not a case transform")
}
