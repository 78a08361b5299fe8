package subscription

import (
	"context"
	"time"
)

// PlanRepository defines the interface for plan persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByCode(ctx context.Context, code string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	List(ctx context.Context, publicOnly bool) ([]*Plan, error)
}

// PlanFeatureRepository defines the interface for plan feature persistence.
type PlanFeatureRepository interface {
	Create(ctx context.Context, feature *PlanFeature) error
	GetByPlanAndCode(ctx context.Context, planID uint, featureCode string) (*PlanFeature, error)
	ListByPlanID(ctx context.Context, planID uint) ([]*PlanFeature, error)
	Update(ctx context.Context, feature *PlanFeature) error
	Delete(ctx context.Context, id uint) error
}

// Repository defines the interface for subscription persistence.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	// GetCurrentByTenantID returns the tenant's authoritative subscription,
	// or ErrSubscriptionNotFound when the tenant has none.
	GetCurrentByTenantID(ctx context.Context, tenantID uint) (*Subscription, error)
	// Update persists the aggregate guarded by its version column and
	// returns ErrSubscriptionNotFound when the guard misses.
	Update(ctx context.Context, sub *Subscription) error
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Subscription, error)
	// ListTrialsEndingBetween returns trial subscriptions whose trial window
	// closes inside [from, to), for reminder delivery.
	ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]*Subscription, error)
}

// UsageRepository defines the interface for the usage metering ledger.
type UsageRepository interface {
	// CheckAndIncrement atomically consumes one unit of a metered feature
	// for the current billing period. The increment succeeds only while the
	// stored count is below limit; a limit of zero or below means unlimited.
	// It creates the ledger row on first use of a feature in a period.
	// Returns the count after increment, or ErrQuotaExceeded without
	// modifying the ledger when the feature is at its limit.
	CheckAndIncrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart, periodEnd time.Time, limit int64) (int64, error)
	// Decrement releases one unit, flooring at zero. Used when the metered
	// resource is deleted within the same period.
	Decrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) error
	Get(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) (*SubscriptionUsage, error)
	ListBySubscription(ctx context.Context, subscriptionID uint, periodStart time.Time) ([]*SubscriptionUsage, error)
}
