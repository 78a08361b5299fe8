package usecases_test

import (
	"context"
	"testing"
	"time"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWithPeriod(t *testing.T, repo *testutil.MockSubscriptionRepository, id uint, status vo.SubscriptionStatus, periodEnd time.Time) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:                 id,
		SID:                "sub_test",
		TenantID:           id,
		PlanID:             1,
		Status:             status,
		BillingCycle:       vo.BillingCycleMonthly,
		CurrentPeriodStart: periodEnd.AddDate(0, -1, 0),
		CurrentPeriodEnd:   periodEnd,
		Version:            1,
		CreatedAt:          periodEnd.AddDate(0, -1, 0),
		UpdatedAt:          periodEnd.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	repo.Seed(sub)
	return sub
}

func TestExpireSubscriptions_MarksOverdue(t *testing.T) {
	repo := testutil.NewMockSubscriptionRepository()
	overdue := time.Now().UTC().AddDate(0, 0, -3)
	seedWithPeriod(t, repo, 1, vo.StatusActive, overdue)
	seedWithPeriod(t, repo, 2, vo.StatusTrial, overdue)
	seedWithPeriod(t, repo, 3, vo.StatusPastDue, overdue)

	uc := subusecases.NewExpireSubscriptionsUseCase(repo, testutil.NewMockLogger())
	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	for _, id := range []uint{1, 2, 3} {
		sub, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusExpired, sub.Status())
	}
}

func TestExpireSubscriptions_LeavesCurrentPeriodsAlone(t *testing.T) {
	repo := testutil.NewMockSubscriptionRepository()
	future := time.Now().UTC().AddDate(0, 0, 10)
	seedWithPeriod(t, repo, 1, vo.StatusActive, future)
	seedWithPeriod(t, repo, 2, vo.StatusSuspended, time.Now().UTC().AddDate(0, 0, -1))

	uc := subusecases.NewExpireSubscriptionsUseCase(repo, testutil.NewMockLogger())
	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	current, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, current.Status())
}

func TestExpireSubscriptions_EmptySweep(t *testing.T) {
	repo := testutil.NewMockSubscriptionRepository()
	uc := subusecases.NewExpireSubscriptionsUseCase(repo, testutil.NewMockLogger())

	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, count)
}
