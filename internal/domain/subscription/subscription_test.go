package subscription

import (
	"testing"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func monthlyCycle(t *testing.T) vo.BillingCycle {
	t.Helper()
	bc, err := vo.ParseBillingCycle("monthly")
	require.NoError(t, err)
	return bc
}

func newTrialSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription(1, 1, nil, monthlyCycle(t), 14)
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func newActiveSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription(1, 1, nil, monthlyCycle(t), 0)
	require.NoError(t, err)
	return sub
}

func reconstructWithStatus(t *testing.T, status vo.SubscriptionStatus, periodStart, periodEnd time.Time) *Subscription {
	t.Helper()
	sub, err := ReconstructSubscription(SubscriptionReconstructParams{
		ID:                 1,
		SID:                "sub_test123",
		TenantID:           10,
		PlanID:             100,
		Status:             status,
		BillingCycle:       monthlyCycle(t),
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodEnd,
		Version:            1,
		CreatedAt:          periodStart,
		UpdatedAt:          periodStart,
	})
	require.NoError(t, err)
	return sub
}

// =====================================================================
// TestNewSubscription_*
// =====================================================================

func TestNewSubscription_WithTrialStartsInTrial(t *testing.T) {
	sub, err := NewSubscription(1, 2, nil, monthlyCycle(t), 14)

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, vo.StatusTrial, sub.Status())
	assert.NotEmpty(t, sub.SID())
	require.NotNil(t, sub.TrialEndsAt())
	assert.True(t, sub.TrialEndsAt().After(sub.CurrentPeriodStart()))
	assert.True(t, sub.CurrentPeriodEnd().After(sub.CurrentPeriodStart()))
}

func TestNewSubscription_WithoutTrialStartsActive(t *testing.T) {
	sub, err := NewSubscription(1, 2, nil, monthlyCycle(t), 0)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.TrialEndsAt())
}

func TestNewSubscription_InvalidInput(t *testing.T) {
	zero := uint(0)

	tests := []struct {
		name      string
		tenantID  uint
		planID    uint
		partnerID *uint
		trialDays int
	}{
		{"zero tenant ID", 0, 1, nil, 0},
		{"zero plan ID", 1, 0, nil, 0},
		{"zero partner ID", 1, 1, &zero, 0},
		{"negative trial days", 1, 1, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := NewSubscription(tt.tenantID, tt.planID, tt.partnerID, monthlyCycle(t), tt.trialDays)
			assert.Error(t, err)
			assert.Nil(t, sub)
		})
	}
}

// =====================================================================
// TestSubscription_Transitions
// =====================================================================

func TestSubscription_ActivateFromTrial(t *testing.T) {
	sub := newTrialSubscription(t)

	err := sub.Activate()

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.TrialEndsAt(), "trial window is cleared on activation")
}

func TestSubscription_ActivateRecoversPastDue(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkPastDue())

	err := sub.Activate()

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestSubscription_ActivateReinstatesSuspended(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Suspend())

	err := sub.Activate()

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestSubscription_MarkPastDueFromTrialRejected(t *testing.T) {
	sub := newTrialSubscription(t)

	err := sub.MarkPastDue()

	assert.Error(t, err)
	assert.Equal(t, vo.StatusTrial, sub.Status())
}

func TestSubscription_CancelRequiresReason(t *testing.T) {
	sub := newActiveSubscription(t)

	err := sub.Cancel("")

	assert.Error(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestSubscription_CancelIsTerminal(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel("customer request"))

	assert.Equal(t, vo.StatusCancelled, sub.Status())
	require.NotNil(t, sub.CancelledAt())
	require.NotNil(t, sub.CancelReason())
	assert.Equal(t, "customer request", *sub.CancelReason())

	assert.Error(t, sub.Activate())
	assert.Error(t, sub.Suspend())
}

func TestSubscription_CancelTwiceIsIdempotent(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel("first"))
	before := *sub.CancelledAt()

	require.NoError(t, sub.Cancel("second"))

	assert.Equal(t, "first", *sub.CancelReason())
	assert.Equal(t, before, *sub.CancelledAt())
}

func TestSubscription_MarkAsExpiredFromCancelledIsNoop(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel("done"))

	require.NoError(t, sub.MarkAsExpired())

	assert.Equal(t, vo.StatusCancelled, sub.Status())
}

func TestSubscription_ExpiredRejectsAllTransitions(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkAsExpired())

	assert.Error(t, sub.Activate())
	assert.Error(t, sub.Suspend())
	assert.Error(t, sub.Cancel("late"))
	assert.Error(t, sub.MarkPastDue())
}

func TestSubscription_TransitionsBumpVersion(t *testing.T) {
	sub := newTrialSubscription(t)
	v := sub.Version()

	require.NoError(t, sub.Activate())
	assert.Equal(t, v+1, sub.Version())

	require.NoError(t, sub.MarkPastDue())
	assert.Equal(t, v+2, sub.Version())
}

// =====================================================================
// TestSubscription_Entitlement
// =====================================================================

func TestSubscription_IsEntitled(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	periodStart := now.AddDate(0, 0, -10)
	periodEnd := now.AddDate(0, 0, 20)

	tests := []struct {
		name   string
		status vo.SubscriptionStatus
		at     time.Time
		want   bool
	}{
		{"trial within period", vo.StatusTrial, now, true},
		{"active within period", vo.StatusActive, now, true},
		{"active at exact period end", vo.StatusActive, periodEnd, true},
		{"active after period end", vo.StatusActive, periodEnd.Add(time.Second), false},
		{"past_due within period", vo.StatusPastDue, now, false},
		{"suspended within period", vo.StatusSuspended, now, false},
		{"cancelled within period", vo.StatusCancelled, now, false},
		{"expired", vo.StatusExpired, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := reconstructWithStatus(t, tt.status, periodStart, periodEnd)
			assert.Equal(t, tt.want, sub.IsEntitled(tt.at))
		})
	}
}

func TestSubscription_IsInTrialIndependentOfEntitlement(t *testing.T) {
	sub := newTrialSubscription(t)
	trialEnd := *sub.TrialEndsAt()

	assert.True(t, sub.IsInTrial(trialEnd.Add(-time.Hour)))
	assert.False(t, sub.IsInTrial(trialEnd.Add(time.Hour)))
	// Still entitled when the billing period runs past the trial window.
	assert.True(t, sub.IsEntitled(trialEnd.Add(time.Hour)))
}

func TestSubscription_EffectiveStatusLazyExpiry(t *testing.T) {
	periodStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	afterEnd := periodEnd.Add(time.Hour)

	for _, status := range []vo.SubscriptionStatus{
		vo.StatusTrial, vo.StatusActive, vo.StatusPastDue, vo.StatusSuspended, vo.StatusCancelled,
	} {
		sub := reconstructWithStatus(t, status, periodStart, periodEnd)

		assert.Equal(t, status, sub.EffectiveStatus(periodEnd), "within period keeps stored status")
		assert.Equal(t, vo.StatusExpired, sub.EffectiveStatus(afterEnd), "lapsed period reads expired")
		assert.Equal(t, status, sub.Status(), "EffectiveStatus must not write state")
	}
}

// =====================================================================
// TestSubscription_Renew / ChangePlan / Proration
// =====================================================================

func TestSubscription_RenewAdvancesPeriod(t *testing.T) {
	sub := newActiveSubscription(t)
	prevEnd := sub.CurrentPeriodEnd()

	err := sub.Renew()

	require.NoError(t, err)
	assert.Equal(t, prevEnd, sub.CurrentPeriodStart())
	assert.True(t, sub.CurrentPeriodEnd().After(prevEnd))
}

func TestSubscription_RenewRecoversPastDue(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkPastDue())

	require.NoError(t, sub.Renew())

	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestSubscription_RenewRejectedForTerminal(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel("gone"))

	assert.Error(t, sub.Renew())
}

func TestSubscription_ChangePlan(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.ChangePlan(7))
	assert.Equal(t, uint(7), sub.PlanID())

	require.NoError(t, sub.ChangePlan(7), "same plan is a no-op")

	assert.Error(t, sub.ChangePlan(0))

	require.NoError(t, sub.Suspend())
	assert.Error(t, sub.ChangePlan(8), "suspended subscription cannot change plan")
}

func TestSubscription_ProrationCredit(t *testing.T) {
	periodStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	sub := reconstructWithStatus(t, vo.StatusActive, periodStart, periodEnd)

	halfway := periodStart.Add(periodEnd.Sub(periodStart) / 2)
	credit := sub.ProrationCredit(halfway, 30000)
	assert.Equal(t, int64(15000), credit)

	assert.Zero(t, sub.ProrationCredit(periodEnd.Add(time.Hour), 30000), "no credit after period end")
	assert.Zero(t, sub.ProrationCredit(halfway, 0), "no credit for free plan")
	assert.Equal(t, int64(30000), sub.ProrationCredit(periodStart, 30000), "full credit at period start")
}

// =====================================================================
// TestSubscriptionUsage_*
// =====================================================================

func TestNewSubscriptionUsage(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	u, err := NewSubscriptionUsage(1, "contacts", start, end)

	require.NoError(t, err)
	assert.Zero(t, u.UsageCount())
	assert.True(t, u.CoversPeriod(start))

	_, err = NewSubscriptionUsage(0, "contacts", start, end)
	assert.Error(t, err)
	_, err = NewSubscriptionUsage(1, "", start, end)
	assert.Error(t, err)
	_, err = NewSubscriptionUsage(1, "contacts", end, start)
	assert.Error(t, err)
}

func TestSubscriptionUsage_Remaining(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	u := ReconstructSubscriptionUsage(1, 1, "contacts", start, start.AddDate(0, 1, 0), 8, nil, start, start)

	assert.Equal(t, int64(2), u.Remaining(10))
	assert.Equal(t, int64(0), u.Remaining(5), "over-limit rows floor at zero")
	assert.Equal(t, int64(-1), u.Remaining(0), "zero limit means unlimited")
}

func TestSubscriptionUsage_Reset(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	u := ReconstructSubscriptionUsage(1, 1, "contacts", start, start.AddDate(0, 1, 0), 42, nil, start, start)

	nextStart := start.AddDate(0, 1, 0)
	require.NoError(t, u.Reset(nextStart, nextStart.AddDate(0, 1, 0)))

	assert.Zero(t, u.UsageCount())
	assert.True(t, u.CoversPeriod(nextStart))
	assert.NotNil(t, u.ResetAt())

	assert.Error(t, u.Reset(nextStart, nextStart), "degenerate period rejected")
}
