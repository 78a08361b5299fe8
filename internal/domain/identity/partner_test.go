package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartner(t *testing.T) {
	p, err := NewPartner("Acme Resellers", 12.5)

	require.NoError(t, err)
	assert.NotEmpty(t, p.SID())
	assert.Len(t, p.Slug(), 8)
	assert.Len(t, p.ReferralCode(), 10)
	assert.Equal(t, 12.5, p.CommissionRate())
	assert.True(t, p.IsActive())
}

func TestNewPartner_InvalidInput(t *testing.T) {
	_, err := NewPartner("", 10)
	assert.Error(t, err)

	_, err = NewPartner("Acme", -1)
	assert.Error(t, err)

	_, err = NewPartner("Acme", 101)
	assert.Error(t, err)
}

func TestPartner_RegenerateSlug(t *testing.T) {
	p, err := NewPartner("Acme", 10)
	require.NoError(t, err)
	old := p.Slug()

	require.NoError(t, p.RegenerateSlug())

	assert.Len(t, p.Slug(), 8)
	assert.NotEqual(t, old, p.Slug())
}

func TestPartner_CommissionRateBounds(t *testing.T) {
	p, err := NewPartner("Acme", 10)
	require.NoError(t, err)

	require.NoError(t, p.UpdateCommissionRate(0))
	require.NoError(t, p.UpdateCommissionRate(100))
	assert.Error(t, p.UpdateCommissionRate(-0.1))
	assert.Error(t, p.UpdateCommissionRate(100.1))
}

func TestUser_PasswordVerification(t *testing.T) {
	u, err := NewUser("owner@example.com", "s3cret-pass", "Owner", 4)
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("s3cret-pass"))
	assert.False(t, u.VerifyPassword("wrong"))
	assert.NotContains(t, u.PasswordHash(), "s3cret-pass")
}

func TestUser_SuperAdminPromotion(t *testing.T) {
	u, err := NewUser("ops@example.com", "s3cret-pass", "Ops", 4)
	require.NoError(t, err)
	assert.False(t, u.IsSuperAdmin())

	u.PromoteToSuperAdmin()
	assert.True(t, u.IsSuperAdmin())
}

func TestTenant_SubscriptionPointer(t *testing.T) {
	tn, err := NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	assert.Nil(t, tn.CurrentSubscriptionID())

	require.NoError(t, tn.SetCurrentSubscription(5))
	require.NotNil(t, tn.CurrentSubscriptionID())
	assert.Equal(t, uint(5), *tn.CurrentSubscriptionID())

	assert.Error(t, tn.SetCurrentSubscription(0))

	tn.ClearCurrentSubscription()
	assert.Nil(t, tn.CurrentSubscriptionID())
}

func TestTenant_StatusLifecycle(t *testing.T) {
	tn, err := NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	assert.True(t, tn.IsActive())

	require.NoError(t, tn.Suspend())
	assert.False(t, tn.IsActive())

	require.NoError(t, tn.Reactivate())
	assert.True(t, tn.IsActive())

	tn.Cancel()
	assert.False(t, tn.IsActive())
	assert.Error(t, tn.Reactivate(), "cancelled tenant cannot reactivate")
}
