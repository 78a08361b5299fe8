package subscription

import (
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionNotFound indicates the subscription does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrPlanNotFound indicates the plan does not exist.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrPlanInactive indicates the plan cannot accept new subscriptions.
	ErrPlanInactive = errors.New("plan is not active")

	// ErrTenantAlreadySubscribed indicates the tenant already has an
	// authoritative subscription.
	ErrTenantAlreadySubscribed = errors.New("tenant already has an active subscription")

	// ErrNoActiveSubscription indicates the tenant has no subscription
	// that grants access.
	ErrNoActiveSubscription = errors.New("tenant has no active subscription")

	// ErrQuotaExceeded indicates a metered feature is at its plan limit.
	ErrQuotaExceeded = errors.New("usage quota exceeded for feature")

	// ErrFeatureNotInPlan indicates the plan does not include the feature.
	ErrFeatureNotInPlan = errors.New("feature is not included in the plan")
)

// ErrInvalidTransition builds an error for a disallowed status transition.
func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("invalid subscription status transition from %s to %s", from, to)
}
