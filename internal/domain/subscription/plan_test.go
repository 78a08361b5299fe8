package subscription

import (
	"testing"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_ValidInput(t *testing.T) {
	limits := vo.NewPlanLimits(map[string]int64{"contacts": 500, "users": 5})

	plan, err := NewPlan("starter", "Starter", "Entry plan", 99900, 999000, 14, limits)

	require.NoError(t, err)
	assert.NotEmpty(t, plan.SID())
	assert.True(t, plan.IsActive())
	assert.True(t, plan.IsPublic())
	assert.True(t, plan.HasTrial())
	assert.Equal(t, int64(500), plan.Limits().Limit("contacts"))
}

func TestNewPlan_InvalidInput(t *testing.T) {
	limits := vo.NewPlanLimits(nil)

	tests := []struct {
		name         string
		code         string
		planName     string
		priceMonthly int64
		priceYearly  int64
		trialDays    int
	}{
		{"empty code", "", "Starter", 100, 1000, 0},
		{"empty name", "starter", "", 100, 1000, 0},
		{"negative monthly price", "starter", "Starter", -1, 1000, 0},
		{"negative yearly price", "starter", "Starter", 100, -1, 0},
		{"negative trial days", "starter", "Starter", 100, 1000, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlan(tt.code, tt.planName, "", tt.priceMonthly, tt.priceYearly, tt.trialDays, limits)
			assert.Error(t, err)
			assert.Nil(t, plan)
		})
	}
}

func TestPlan_PriceFor(t *testing.T) {
	plan, err := NewPlan("growth", "Growth", "", 199900, 1999000, 0, vo.NewPlanLimits(nil))
	require.NoError(t, err)

	monthly, err := vo.ParseBillingCycle("monthly")
	require.NoError(t, err)
	yearly, err := vo.ParseBillingCycle("yearly")
	require.NoError(t, err)

	assert.Equal(t, int64(199900), plan.PriceFor(monthly))
	assert.Equal(t, int64(1999000), plan.PriceFor(yearly))
}

func TestPlanFeature_UsageLimit(t *testing.T) {
	planLimits := vo.NewPlanLimits(map[string]int64{"contacts": 500})

	// Feature override wins over the plan-level limit.
	f, err := NewPlanFeature(1, "contacts", true, vo.NewPlanLimits(map[string]int64{"contacts": 1000}))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), f.UsageLimit(planLimits))

	// Without an override the plan limit applies.
	f2, err := NewPlanFeature(1, "contacts", true, vo.NewPlanLimits(nil))
	require.NoError(t, err)
	assert.Equal(t, int64(500), f2.UsageLimit(planLimits))
}

func TestPlan_DeactivateAndUnlist(t *testing.T) {
	plan, err := NewPlan("legacy", "Legacy", "", 100, 1000, 0, vo.NewPlanLimits(nil))
	require.NoError(t, err)

	plan.Unlist()
	assert.False(t, plan.IsPublic())
	assert.True(t, plan.IsActive(), "unlisted plans still serve existing subscribers")

	plan.Deactivate()
	assert.False(t, plan.IsActive())

	plan.Activate()
	assert.True(t, plan.IsActive())
}
