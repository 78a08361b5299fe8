package usecases_test

import (
	"context"
	"testing"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users       *testutil.MockUserRepository
	memberships *testutil.MockMembershipRepository
	roles       *testutil.MockRoleRepository
	cache       *testutil.MockPermissionCache
	resolve     *acusecases.ResolvePrincipalUseCase
	perms       *acusecases.EffectivePermissionsUseCase
	gate        *acusecases.AuthorizeActionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := testutil.NewMockLogger()
	f := &fixture{
		users:       testutil.NewMockUserRepository(),
		memberships: testutil.NewMockMembershipRepository(),
		roles:       testutil.NewMockRoleRepository(),
		cache:       testutil.NewMockPermissionCache(),
	}
	f.resolve = acusecases.NewResolvePrincipalUseCase(f.users, f.memberships, log)
	f.perms = acusecases.NewEffectivePermissionsUseCase(f.roles, log)
	f.gate = acusecases.NewAuthorizeActionUseCase(f.resolve, f.perms, log)

	// Seed the system role catalog.
	for _, spec := range []struct {
		code  string
		perms []string
	}{
		{accesscontrol.SystemRoleAdmin, []string{"leads.read", "leads.write", "leads.delete", "roles.manage"}},
		{accesscontrol.SystemRoleManager, []string{"leads.read", "leads.write", "reports.read"}},
		{accesscontrol.SystemRoleSales, []string{"leads.read", "leads.write"}},
		{accesscontrol.SystemRoleSupport, []string{"tickets.read", "tickets.write"}},
		{accesscontrol.SystemRoleUser, []string{"leads.read"}},
	} {
		role, err := accesscontrol.NewSystemRole(spec.code, spec.code, spec.perms, spec.code == accesscontrol.SystemRoleUser)
		require.NoError(t, err)
		require.NoError(t, f.roles.Create(context.Background(), role))
	}
	return f
}

func (f *fixture) addUser(t *testing.T, email string, superAdmin bool) *identity.User {
	t.Helper()
	u, err := identity.NewUser(email, "test-password", "Test", 4)
	require.NoError(t, err)
	if superAdmin {
		u.PromoteToSuperAdmin()
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addMember(t *testing.T, userID, tenantID uint, legacy identity.LegacyRole, owner bool) *identity.Membership {
	t.Helper()
	m, err := identity.NewMembership(userID, tenantID, legacy, owner)
	require.NoError(t, err)
	require.NoError(t, f.memberships.Create(context.Background(), m))
	return m
}

func TestAuthorize_SuperAdminBypassesMembership(t *testing.T) {
	f := newFixture(t)
	sa := f.addUser(t, "root@example.com", true)
	// Deliberately no membership in tenant 9.

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: sa.ID(), TenantID: 9, PermissionCode: "anything.whatsoever",
	})

	require.NoError(t, err)
	assert.True(t, d.Allowed())
}

func TestAuthorize_OwnerGetsUniversalSet(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "owner@example.com", false)
	f.addMember(t, u.ID(), 1, identity.LegacyRoleUser, true)

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "roles.manage",
	})

	require.NoError(t, err)
	assert.True(t, d.Allowed(), "owner overrides the weak legacy role")
}

func TestAuthorize_NonMemberDenied(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "member@example.com", false)
	f.addMember(t, u.ID(), 1, identity.LegacyRoleAdmin, false)

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 2, PermissionCode: "leads.read",
	})

	require.NoError(t, err)
	assert.False(t, d.Allowed())
	assert.Equal(t, accesscontrol.DenyNotTenantMember, d.Reason())
	assert.Equal(t, "not a member of this tenant", d.Message())
}

func TestAuthorize_CustomRoleOverridesLegacyRole(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "sales@example.com", false)
	m := f.addMember(t, u.ID(), 1, identity.LegacyRoleAdmin, false)

	restricted, err := accesscontrol.NewTenantRole(1, "Read Only", "", []string{"leads.read"})
	require.NoError(t, err)
	require.NoError(t, f.roles.Create(context.Background(), restricted))
	require.NoError(t, m.AssignRole(restricted.ID()))
	require.NoError(t, f.memberships.Update(context.Background(), m))

	// The custom role wins even though the legacy role would allow this.
	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.delete",
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed())

	d, err = f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.read",
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed())
}

func TestAuthorize_DanglingRoleFailsClosed(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "dangling@example.com", false)
	m := f.addMember(t, u.ID(), 1, identity.LegacyRoleAdmin, false)
	require.NoError(t, m.AssignRole(9999))
	require.NoError(t, f.memberships.Update(context.Background(), m))

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.read",
	})

	require.NoError(t, err)
	assert.False(t, d.Allowed(), "dangling role must not fall back to the legacy role")
}

func TestAuthorize_RoleFromAnotherTenantFailsClosed(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "crossed@example.com", false)
	m := f.addMember(t, u.ID(), 1, identity.LegacyRoleUser, false)

	foreign, err := accesscontrol.NewTenantRole(2, "Foreign", "", []string{"leads.read", "leads.write"})
	require.NoError(t, err)
	require.NoError(t, f.roles.Create(context.Background(), foreign))
	require.NoError(t, m.AssignRole(foreign.ID()))
	require.NoError(t, f.memberships.Update(context.Background(), m))

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.read",
	})

	require.NoError(t, err)
	assert.False(t, d.Allowed())
}

func TestAuthorize_LegacyRoleMapsToSystemRole(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "legacy@example.com", false)
	f.addMember(t, u.ID(), 1, identity.LegacyRoleSales, false)

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.write",
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed())

	d, err = f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "roles.manage",
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed())
	assert.Equal(t, accesscontrol.DenyMissingPermission, d.Reason())
	assert.Equal(t, "missing permission: roles.manage", d.Message())
}

func TestAuthorize_AnyOfSemantics(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "support@example.com", false)
	f.addMember(t, u.ID(), 1, identity.LegacyRoleSupport, false)

	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, AnyOf: []string{"leads.read", "tickets.read"},
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed())

	d, err = f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, AnyOf: []string{"leads.read", "reports.read"},
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed())
	assert.Equal(t, accesscontrol.DenyNoMatchingPermissions, d.Reason())
}

func TestEffectivePermissions_CacheRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.perms.SetCache(f.cache)
	u := f.addUser(t, "cached@example.com", false)
	f.addMember(t, u.ID(), 1, identity.LegacyRoleSales, false)

	for i := 0; i < 3; i++ {
		d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
			UserID: u.ID(), TenantID: 1, PermissionCode: "leads.read",
		})
		require.NoError(t, err)
		assert.True(t, d.Allowed())
	}

	assert.Equal(t, 1, f.cache.Sets, "resolved once, then served from cache")
	assert.Equal(t, 2, f.cache.Hits)
}

func TestDeleteRole_DetachesMembershipsInSameTransaction(t *testing.T) {
	f := newFixture(t)
	log := testutil.NewMockLogger()
	tx := testutil.NewMockTransactor()
	u := f.addUser(t, "detach@example.com", false)
	m := f.addMember(t, u.ID(), 1, identity.LegacyRoleSales, false)

	role, err := accesscontrol.NewTenantRole(1, "Temp", "", []string{"leads.read"})
	require.NoError(t, err)
	require.NoError(t, f.roles.Create(context.Background(), role))
	require.NoError(t, m.AssignRole(role.ID()))
	require.NoError(t, f.memberships.Update(context.Background(), m))

	uc := acusecases.NewDeleteRoleUseCase(f.roles, f.memberships, tx, log)
	require.NoError(t, uc.Execute(context.Background(), acusecases.DeleteRoleCommand{TenantID: 1, RoleID: role.ID()}))

	assert.Equal(t, 1, tx.Calls)
	got, err := f.memberships.GetByUserAndTenant(context.Background(), u.ID(), 1)
	require.NoError(t, err)
	assert.Nil(t, got.RoleID(), "membership falls back to its legacy role")

	// The legacy role applies again after the detachment.
	d, err := f.gate.Execute(context.Background(), acusecases.AuthorizeActionCommand{
		UserID: u.ID(), TenantID: 1, PermissionCode: "leads.write",
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed())
}

func TestDeleteRole_SystemRoleRejected(t *testing.T) {
	f := newFixture(t)
	log := testutil.NewMockLogger()
	uc := acusecases.NewDeleteRoleUseCase(f.roles, f.memberships, testutil.NewMockTransactor(), log)

	sysRole, err := f.roles.GetSystemRoleByCode(context.Background(), accesscontrol.SystemRoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, sysRole)

	err = uc.Execute(context.Background(), acusecases.DeleteRoleCommand{TenantID: 1, RoleID: sysRole.ID()})
	assert.ErrorIs(t, err, accesscontrol.ErrSystemRoleUndeletable)
}

func TestCreateRole_RejectsUnknownPermissionCode(t *testing.T) {
	f := newFixture(t)
	log := testutil.NewMockLogger()
	permRepo := testutil.NewMockPermissionRepository()
	for _, code := range []string{"leads.read", "leads.write"} {
		p, err := accesscontrol.NewPermission(code, code, "leads")
		require.NoError(t, err)
		require.NoError(t, permRepo.Create(context.Background(), p))
	}
	uc := acusecases.NewCreateRoleUseCase(f.roles, permRepo, log)

	_, err := uc.Execute(context.Background(), acusecases.CreateRoleCommand{
		TenantID: 1, Name: "Broken", Permissions: []string{"leads.read", "nope.nope"},
	})
	assert.ErrorIs(t, err, accesscontrol.ErrUnknownPermission)

	role, err := uc.Execute(context.Background(), acusecases.CreateRoleCommand{
		TenantID: 1, Name: "Writers", Permissions: []string{"leads.read", "leads.write"},
	})
	require.NoError(t, err)
	assert.NotZero(t, role.ID())
}
