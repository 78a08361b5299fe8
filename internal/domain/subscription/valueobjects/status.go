package valueobjects

type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusSuspended SubscriptionStatus = "suspended"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no outgoing transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// GrantsAccess reports whether the status counts toward entitlement; the
// period check lives in Subscription.IsEntitled.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == StatusTrial || s == StatusActive
}

// CanTransitionTo enforces the subscription lifecycle. Lazy expiry (any
// non-terminal status past its period end) is handled by EffectiveStatus
// and is deliberately absent here.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusTrial:     {StatusActive, StatusCancelled, StatusExpired, StatusSuspended},
		StatusActive:    {StatusPastDue, StatusCancelled, StatusExpired, StatusSuspended},
		StatusPastDue:   {StatusActive, StatusSuspended, StatusExpired},
		StatusSuspended: {StatusActive, StatusExpired},
		StatusCancelled: {},
		StatusExpired:   {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusTrial:     true,
	StatusActive:    true,
	StatusPastDue:   true,
	StatusSuspended: true,
	StatusCancelled: true,
	StatusExpired:   true,
}
