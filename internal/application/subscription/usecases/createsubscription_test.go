package usecases_test

import (
	"context"
	"testing"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubscription_TrialByDefault(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	tx := testutil.NewMockTransactor()
	plan := f.seedPlan(t, "starter", nil, 14)
	tenant, err := identity.NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	require.NoError(t, f.tenants.Create(context.Background(), tenant))

	uc := subusecases.NewCreateSubscriptionUseCase(f.subs, f.plans, f.tenants, tx, log)
	sub, err := uc.Execute(context.Background(), subusecases.CreateSubscriptionCommand{
		TenantID: tenant.ID(), PlanCode: "starter", BillingCycle: "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusTrial, sub.Status())
	assert.Equal(t, plan.ID(), sub.PlanID())
	require.NotNil(t, tenant.CurrentSubscriptionID())
	assert.Equal(t, sub.ID(), *tenant.CurrentSubscriptionID())
	assert.Equal(t, 1, tx.Calls)
}

func TestCreateSubscription_SkipTrialStartsActive(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	f.seedPlan(t, "starter", nil, 14)
	tenant, err := identity.NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	require.NoError(t, f.tenants.Create(context.Background(), tenant))

	uc := subusecases.NewCreateSubscriptionUseCase(f.subs, f.plans, f.tenants, testutil.NewMockTransactor(), log)
	sub, err := uc.Execute(context.Background(), subusecases.CreateSubscriptionCommand{
		TenantID: tenant.ID(), PlanCode: "starter", BillingCycle: "yearly", SkipTrial: true,
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.TrialEndsAt())
}

func TestCreateSubscription_SecondSubscriptionRejected(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	f.seedPlan(t, "starter", nil, 0)
	tenant, err := identity.NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	require.NoError(t, f.tenants.Create(context.Background(), tenant))

	uc := subusecases.NewCreateSubscriptionUseCase(f.subs, f.plans, f.tenants, testutil.NewMockTransactor(), log)
	_, err = uc.Execute(context.Background(), subusecases.CreateSubscriptionCommand{
		TenantID: tenant.ID(), PlanCode: "starter", BillingCycle: "monthly",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), subusecases.CreateSubscriptionCommand{
		TenantID: tenant.ID(), PlanCode: "starter", BillingCycle: "monthly",
	})
	assert.ErrorIs(t, err, subscription.ErrTenantAlreadySubscribed)
}

func TestCreateSubscription_InactivePlanRejected(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	plan := f.seedPlan(t, "legacy", nil, 0)
	plan.Deactivate()
	require.NoError(t, f.plans.Update(context.Background(), plan))
	tenant, err := identity.NewTenant("Globex", "production", nil)
	require.NoError(t, err)
	require.NoError(t, f.tenants.Create(context.Background(), tenant))

	uc := subusecases.NewCreateSubscriptionUseCase(f.subs, f.plans, f.tenants, testutil.NewMockTransactor(), log)
	_, err = uc.Execute(context.Background(), subusecases.CreateSubscriptionCommand{
		TenantID: tenant.ID(), PlanCode: "legacy", BillingCycle: "monthly",
	})
	assert.ErrorIs(t, err, subscription.ErrPlanInactive)
}

func TestChangePlan_ReturnsProrationCredit(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	oldPlan := f.seedPlan(t, "starter", nil, 0)
	newPlan := f.seedPlan(t, "growth", nil, 0)
	f.seedActiveSubscription(t, 1, oldPlan)

	uc := subusecases.NewChangePlanUseCase(f.subs, f.plans, log)
	res, err := uc.Execute(context.Background(), subusecases.ChangePlanCommand{TenantID: 1, NewPlanCode: "growth"})

	require.NoError(t, err)
	assert.Equal(t, newPlan.ID(), res.Subscription.PlanID())
	assert.Equal(t, "starter", res.OldPlanCode)
	assert.Equal(t, "growth", res.NewPlanCode)
	// The subscription was created moments ago, so nearly the whole period
	// price comes back as credit.
	assert.Greater(t, res.ProrationCredit, int64(99000))
	assert.LessOrEqual(t, res.ProrationCredit, int64(99900))
}

func TestTransition_SuspendAndReinstate(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	plan := f.seedPlan(t, "starter", nil, 0)
	f.seedActiveSubscription(t, 1, plan)

	uc := subusecases.NewTransitionSubscriptionUseCase(f.subs, log)

	sub, err := uc.Suspend(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusSuspended, sub.Status())

	sub, err = uc.Activate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestTransition_CancelRequiresReason(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	plan := f.seedPlan(t, "starter", nil, 0)
	f.seedActiveSubscription(t, 1, plan)

	uc := subusecases.NewTransitionSubscriptionUseCase(f.subs, log)

	_, err := uc.Cancel(context.Background(), 1, "")
	assert.Error(t, err)

	sub, err := uc.Cancel(context.Background(), 1, "switching vendors")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, sub.Status())
}

func TestRenew_AdvancesPeriodAndRecoversPastDue(t *testing.T) {
	f := newSubFixture(t)
	log := testutil.NewMockLogger()
	plan := f.seedPlan(t, "starter", nil, 0)
	f.seedActiveSubscription(t, 1, plan)

	transition := subusecases.NewTransitionSubscriptionUseCase(f.subs, log)
	_, err := transition.MarkPastDue(context.Background(), 1)
	require.NoError(t, err)

	renew := subusecases.NewRenewSubscriptionUseCase(f.subs, log)
	sub, err := renew.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}
