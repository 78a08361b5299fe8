package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
)

const testBcryptCost = 4

type identityFixture struct {
	users       *testutil.MockUserRepository
	tenants     *testutil.MockTenantRepository
	partners    *testutil.MockPartnerRepository
	memberships *testutil.MockMembershipRepository
	tx          *testutil.MockTransactor
	register    *usecases.RegisterTenantUseCase
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()
	f := &identityFixture{
		users:       testutil.NewMockUserRepository(),
		tenants:     testutil.NewMockTenantRepository(),
		partners:    testutil.NewMockPartnerRepository(),
		memberships: testutil.NewMockMembershipRepository(),
		tx:          testutil.NewMockTransactor(),
	}
	f.register = usecases.NewRegisterTenantUseCase(
		f.users, f.tenants, f.partners, f.memberships, f.tx, testBcryptCost, testutil.NewMockLogger())
	return f
}

func registerCommand() usecases.RegisterTenantCommand {
	return usecases.RegisterTenantCommand{
		Email:       "founder@acme.example",
		Password:    "s3cret-enough",
		Name:        "Asha Rao",
		TenantName:  "Acme Realty",
		Environment: "production",
	}
}

func TestRegisterTenant_CreatesUserTenantAndOwnerMembership(t *testing.T) {
	f := newIdentityFixture(t)

	res, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	assert.NotZero(t, res.User.ID())
	assert.NotZero(t, res.Tenant.ID())
	assert.True(t, res.Membership.IsOwner())
	assert.Equal(t, identity.LegacyRoleAdmin, res.Membership.LegacyRole())
	assert.Equal(t, res.User.ID(), res.Membership.UserID())
	assert.Equal(t, res.Tenant.ID(), res.Membership.TenantID())
	assert.Nil(t, res.Tenant.PartnerID())
	assert.Equal(t, 1, f.tx.Calls)
}

func TestRegisterTenant_RejectsDuplicateEmail(t *testing.T) {
	f := newIdentityFixture(t)

	_, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	cmd := registerCommand()
	cmd.TenantName = "Second Venture"
	_, err = f.register.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, identity.ErrEmailExists)
}

func TestRegisterTenant_AttributesActivePartnerReferral(t *testing.T) {
	f := newIdentityFixture(t)
	partner, err := identity.NewPartner("PropTech Resellers", 12.5)
	require.NoError(t, err)
	require.NoError(t, f.partners.Create(context.Background(), partner))

	cmd := registerCommand()
	cmd.ReferralCode = partner.ReferralCode()
	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)

	require.NotNil(t, res.Tenant.PartnerID())
	assert.Equal(t, partner.ID(), *res.Tenant.PartnerID())
}

func TestRegisterTenant_IgnoresUnknownReferralCode(t *testing.T) {
	f := newIdentityFixture(t)

	cmd := registerCommand()
	cmd.ReferralCode = "NOSUCHCODE"
	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Nil(t, res.Tenant.PartnerID())
}

func TestRegisterTenant_IgnoresSuspendedPartnerReferral(t *testing.T) {
	f := newIdentityFixture(t)
	partner, err := identity.NewPartner("Dormant Partner", 10)
	require.NoError(t, err)
	require.NoError(t, f.partners.Create(context.Background(), partner))
	partner.Suspend()

	cmd := registerCommand()
	cmd.ReferralCode = partner.ReferralCode()
	res, err := f.register.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Nil(t, res.Tenant.PartnerID())
}

func TestCreatePartner_RetriesOnSlugCollision(t *testing.T) {
	f := newIdentityFixture(t)
	uc := usecases.NewCreatePartnerUseCase(f.partners, testutil.NewMockLogger())

	f.partners.ConflictNext = 2
	partner, err := uc.Execute(context.Background(), usecases.CreatePartnerCommand{
		Name:           "Metro Brokers",
		CommissionRate: 15,
	})
	require.NoError(t, err)
	assert.NotZero(t, partner.ID())
	assert.Len(t, partner.Slug(), 8)
	assert.Equal(t, 0, f.partners.ConflictNext)
}

func TestCreatePartner_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newIdentityFixture(t)
	uc := usecases.NewCreatePartnerUseCase(f.partners, testutil.NewMockLogger())

	f.partners.ConflictNext = 10
	_, err := uc.Execute(context.Background(), usecases.CreatePartnerCommand{
		Name:           "Metro Brokers",
		CommissionRate: 15,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrPartnerSlugExists)
}

func TestAddMember_AttachesExistingUser(t *testing.T) {
	f := newIdentityFixture(t)
	res, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	colleague, err := identity.NewUser("agent@acme.example", "agent-pass-1", "Ravi Kumar", testBcryptCost)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), colleague))

	add := usecases.NewAddMemberUseCase(f.users, f.memberships, testutil.NewMockLogger())
	membership, err := add.Execute(context.Background(), usecases.AddMemberCommand{
		TenantID:   res.Tenant.ID(),
		Email:      "agent@acme.example",
		LegacyRole: "sales",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.LegacyRoleSales, membership.LegacyRole())
	assert.False(t, membership.IsOwner())

	_, err = add.Execute(context.Background(), usecases.AddMemberCommand{
		TenantID:   res.Tenant.ID(),
		Email:      "agent@acme.example",
		LegacyRole: "sales",
	})
	assert.ErrorIs(t, err, identity.ErrMembershipExists)
}

func TestRemoveMember_RefusesOwner(t *testing.T) {
	f := newIdentityFixture(t)
	res, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	remove := usecases.NewRemoveMemberUseCase(f.memberships, testutil.NewMockLogger())
	err = remove.Execute(context.Background(), usecases.RemoveMemberCommand{
		TenantID:     res.Tenant.ID(),
		TargetUserID: res.User.ID(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
}

type stubTokenService struct{}

func (stubTokenService) Issue(userID uint, email string, isSuperAdmin bool) (string, time.Time, error) {
	return "token-for-user", time.Now().Add(time.Hour), nil
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	f := newIdentityFixture(t)
	_, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	login := usecases.NewLoginUseCase(f.users, stubTokenService{}, testutil.NewMockLogger())
	res, err := login.Execute(context.Background(), usecases.LoginCommand{
		Email:    "founder@acme.example",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-user", res.Token)
}

func TestLogin_SameErrorForWrongPasswordAndUnknownEmail(t *testing.T) {
	f := newIdentityFixture(t)
	_, err := f.register.Execute(context.Background(), registerCommand())
	require.NoError(t, err)

	login := usecases.NewLoginUseCase(f.users, stubTokenService{}, testutil.NewMockLogger())

	_, err = login.Execute(context.Background(), usecases.LoginCommand{
		Email:    "founder@acme.example",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, usecases.ErrInvalidCredentials)

	_, err = login.Execute(context.Background(), usecases.LoginCommand{
		Email:    "ghost@acme.example",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, usecases.ErrInvalidCredentials)
}
