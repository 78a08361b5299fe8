package usecases_test

import (
	"context"
	"sync"
	"testing"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subFixture struct {
	subs     *testutil.MockSubscriptionRepository
	plans    *testutil.MockPlanRepository
	features *testutil.MockPlanFeatureRepository
	usage    *testutil.MockUsageRepository
	tenants  *testutil.MockTenantRepository
	ent      *subusecases.EntitlementService
	quota    *subusecases.QuotaService
}

func newSubFixture(t *testing.T) *subFixture {
	t.Helper()
	log := testutil.NewMockLogger()
	f := &subFixture{
		subs:     testutil.NewMockSubscriptionRepository(),
		plans:    testutil.NewMockPlanRepository(),
		features: testutil.NewMockPlanFeatureRepository(),
		usage:    testutil.NewMockUsageRepository(),
		tenants:  testutil.NewMockTenantRepository(),
	}
	f.ent = subusecases.NewEntitlementService(f.subs, f.plans, log)
	f.quota = subusecases.NewQuotaService(f.ent, f.features, f.usage, log)
	return f
}

func (f *subFixture) seedPlan(t *testing.T, code string, limits map[string]int64, trialDays int) *subscription.Plan {
	t.Helper()
	plan, err := subscription.NewPlan(code, code, "", 99900, 999000, trialDays, vo.NewPlanLimits(limits))
	require.NoError(t, err)
	require.NoError(t, f.plans.Create(context.Background(), plan))
	return plan
}

func (f *subFixture) seedActiveSubscription(t *testing.T, tenantID uint, plan *subscription.Plan) *subscription.Subscription {
	t.Helper()
	cycle, err := vo.ParseBillingCycle("monthly")
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(tenantID, plan.ID(), nil, cycle, 0)
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(context.Background(), sub))
	return sub
}

func TestQuota_FiveAllowedSixthDenied(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", map[string]int64{"contacts": 5}, 0)
	f.seedActiveSubscription(t, 1, plan)

	for i := 1; i <= 5; i++ {
		res, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
		require.NoError(t, err)
		assert.Equal(t, int64(i), res.Used)
		assert.Equal(t, int64(5), res.Limit)
	}

	_, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	assert.ErrorIs(t, err, subscription.ErrQuotaExceeded)

	// The denied attempt must not have touched the ledger.
	res, err := f.quota.Usage(context.Background(), 1, "contacts")
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Used)
}

func TestQuota_ConcurrentBurstAtLimit(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", map[string]int64{"contacts": 5}, 0)
	f.seedActiveSubscription(t, 1, plan)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
		}(i)
	}
	wg.Wait()

	var allowed, denied int
	for _, err := range errs {
		if err == nil {
			allowed++
		} else {
			require.ErrorIs(t, err, subscription.ErrQuotaExceeded)
			denied++
		}
	}
	assert.Equal(t, 5, allowed, "exactly limit increments succeed under a concurrent burst")
	assert.Equal(t, attempts-5, denied)
}

func TestQuota_ZeroLimitIsUnlimited(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "enterprise", map[string]int64{"contacts": 0}, 0)
	f.seedActiveSubscription(t, 1, plan)

	for i := 0; i < 50; i++ {
		_, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
		require.NoError(t, err)
	}
}

func TestQuota_FeatureOverrideWinsOverPlanLimit(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", map[string]int64{"contacts": 5}, 0)
	f.seedActiveSubscription(t, 1, plan)

	feature, err := subscription.NewPlanFeature(plan.ID(), "contacts", true, vo.NewPlanLimits(map[string]int64{"contacts": 2}))
	require.NoError(t, err)
	require.NoError(t, f.features.Create(context.Background(), feature))

	_, err = f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	require.NoError(t, err)
	_, err = f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	require.NoError(t, err)
	_, err = f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	assert.ErrorIs(t, err, subscription.ErrQuotaExceeded)
}

func TestQuota_DisabledFeatureRejected(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", nil, 0)
	f.seedActiveSubscription(t, 1, plan)

	feature, err := subscription.NewPlanFeature(plan.ID(), "automation", false, vo.NewPlanLimits(nil))
	require.NoError(t, err)
	require.NoError(t, f.features.Create(context.Background(), feature))

	_, err = f.quota.CheckAndIncrement(context.Background(), 1, "automation")
	assert.ErrorIs(t, err, subscription.ErrFeatureNotInPlan)
}

func TestQuota_ReleaseGivesBackOneUnit(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", map[string]int64{"contacts": 2}, 0)
	f.seedActiveSubscription(t, 1, plan)

	_, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	require.NoError(t, err)
	_, err = f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	require.NoError(t, err)

	require.NoError(t, f.quota.Release(context.Background(), 1, "contacts"))

	res, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Used)
}

func TestQuota_UnentitledTenantDenied(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", map[string]int64{"contacts": 5}, 0)
	sub := f.seedActiveSubscription(t, 1, plan)
	require.NoError(t, sub.Suspend())
	require.NoError(t, f.subs.Update(context.Background(), sub))

	_, err := f.quota.CheckAndIncrement(context.Background(), 1, "contacts")
	assert.ErrorIs(t, err, subscription.ErrNoActiveSubscription)
}

func TestEntitlement_NoSubscription(t *testing.T) {
	f := newSubFixture(t)

	_, err := f.ent.Check(context.Background(), 42)
	assert.ErrorIs(t, err, subscription.ErrNoActiveSubscription)
}

func TestEntitlement_TrialIsEntitled(t *testing.T) {
	f := newSubFixture(t)
	plan := f.seedPlan(t, "starter", nil, 14)
	cycle, err := vo.ParseBillingCycle("monthly")
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(1, plan.ID(), nil, cycle, 14)
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(context.Background(), sub))

	res, err := f.ent.Check(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.Entitled)
	assert.True(t, res.InTrial)
	assert.Equal(t, vo.StatusTrial, res.EffectiveStatus)
}
