package subscription

import (
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

// SubscriptionUsage is one row of the usage metering ledger: the consumed
// count for a single feature within a single billing period. Increments are
// performed atomically by the repository; this entity never carries a
// read-modify-write counter across process boundaries.
type SubscriptionUsage struct {
	id             uint
	subscriptionID uint
	featureCode    string
	periodStart    time.Time
	periodEnd      time.Time
	usageCount     int64
	resetAt        *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewSubscriptionUsage opens a ledger row for a feature and billing period
// with a zero count.
func NewSubscriptionUsage(subscriptionID uint, featureCode string, periodStart, periodEnd time.Time) (*SubscriptionUsage, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if featureCode == "" {
		return nil, fmt.Errorf("feature code is required")
	}
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("period end must be after period start")
	}

	now := biztime.NowUTC()
	return &SubscriptionUsage{
		subscriptionID: subscriptionID,
		featureCode:    featureCode,
		periodStart:    periodStart,
		periodEnd:      periodEnd,
		usageCount:     0,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructSubscriptionUsage reconstructs a ledger row from persistence.
func ReconstructSubscriptionUsage(
	usageID uint,
	subscriptionID uint,
	featureCode string,
	periodStart time.Time,
	periodEnd time.Time,
	usageCount int64,
	resetAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *SubscriptionUsage {
	return &SubscriptionUsage{
		id:             usageID,
		subscriptionID: subscriptionID,
		featureCode:    featureCode,
		periodStart:    periodStart,
		periodEnd:      periodEnd,
		usageCount:     usageCount,
		resetAt:        resetAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (u *SubscriptionUsage) ID() uint             { return u.id }
func (u *SubscriptionUsage) SubscriptionID() uint { return u.subscriptionID }
func (u *SubscriptionUsage) FeatureCode() string  { return u.featureCode }
func (u *SubscriptionUsage) PeriodStart() time.Time { return u.periodStart }
func (u *SubscriptionUsage) PeriodEnd() time.Time   { return u.periodEnd }
func (u *SubscriptionUsage) UsageCount() int64      { return u.usageCount }
func (u *SubscriptionUsage) ResetAt() *time.Time    { return u.resetAt }
func (u *SubscriptionUsage) CreatedAt() time.Time   { return u.createdAt }
func (u *SubscriptionUsage) UpdatedAt() time.Time   { return u.updatedAt }

// CoversPeriod reports whether the row belongs to the given billing period.
func (u *SubscriptionUsage) CoversPeriod(periodStart time.Time) bool {
	return u.periodStart.Equal(periodStart)
}

// Remaining returns how many units are left under limit. A limit of zero
// means unlimited, reported as -1.
func (u *SubscriptionUsage) Remaining(limit int64) int64 {
	if limit <= 0 {
		return -1
	}
	left := limit - u.usageCount
	if left < 0 {
		return 0
	}
	return left
}

// Reset zeroes the counter at a period rollover.
func (u *SubscriptionUsage) Reset(periodStart, periodEnd time.Time) error {
	if !periodEnd.After(periodStart) {
		return fmt.Errorf("period end must be after period start")
	}
	now := biztime.NowUTC()
	u.usageCount = 0
	u.periodStart = periodStart
	u.periodEnd = periodEnd
	u.resetAt = &now
	u.updatedAt = now
	return nil
}
