package subscription

import (
	"fmt"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

// Subscription is the aggregate root for a tenant's plan enrollment.
// At most one subscription per tenant is authoritative; the tenant's
// currentSubscriptionID points at it. Expiry is evaluated lazily at
// entitlement-check time, never by a background sweep.
type Subscription struct {
	id                 uint
	sid                string
	tenantID           uint
	planID             uint
	partnerID          *uint
	status             vo.SubscriptionStatus
	billingCycle       vo.BillingCycle
	currentPeriodStart time.Time
	currentPeriodEnd   time.Time
	trialEndsAt        *time.Time
	cancelledAt        *time.Time
	cancelReason       *string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSubscription enrolls a tenant on a plan. With trialDays > 0 the
// subscription starts in trial and trialEndsAt is stamped; otherwise it
// starts active. partnerID attributes commission, nil for direct signups.
func NewSubscription(tenantID, planID uint, partnerID *uint, cycle vo.BillingCycle, trialDays int) (*Subscription, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if partnerID != nil && *partnerID == 0 {
		return nil, fmt.Errorf("partner ID cannot be zero when set")
	}
	if trialDays < 0 {
		return nil, fmt.Errorf("trial days cannot be negative")
	}

	now := biztime.NowUTC()
	s := &Subscription{
		sid:                id.MustGenerateWithPrefix(id.PrefixSubscription),
		tenantID:           tenantID,
		planID:             planID,
		partnerID:          partnerID,
		status:             vo.StatusActive,
		billingCycle:       cycle,
		currentPeriodStart: now,
		currentPeriodEnd:   cycle.NextPeriodEnd(now),
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	if trialDays > 0 {
		trialEnd := now.AddDate(0, 0, trialDays)
		s.status = vo.StatusTrial
		s.trialEndsAt = &trialEnd
	}

	return s, nil
}

// SubscriptionReconstructParams carries persistence fields for reconstruction.
type SubscriptionReconstructParams struct {
	ID                 uint
	SID                string
	TenantID           uint
	PlanID             uint
	PartnerID          *uint
	Status             vo.SubscriptionStatus
	BillingCycle       vo.BillingCycle
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	TrialEndsAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       *string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if p.PlanID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if p.CurrentPeriodEnd.Before(p.CurrentPeriodStart) {
		return nil, fmt.Errorf("current period end must not precede period start")
	}

	return &Subscription{
		id:                 p.ID,
		sid:                p.SID,
		tenantID:           p.TenantID,
		planID:             p.PlanID,
		partnerID:          p.PartnerID,
		status:             p.Status,
		billingCycle:       p.BillingCycle,
		currentPeriodStart: p.CurrentPeriodStart,
		currentPeriodEnd:   p.CurrentPeriodEnd,
		trialEndsAt:        p.TrialEndsAt,
		cancelledAt:        p.CancelledAt,
		cancelReason:       p.CancelReason,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                        { return s.id }
func (s *Subscription) SID() string                     { return s.sid }
func (s *Subscription) TenantID() uint                  { return s.tenantID }
func (s *Subscription) PlanID() uint                    { return s.planID }
func (s *Subscription) PartnerID() *uint                { return s.partnerID }
func (s *Subscription) Status() vo.SubscriptionStatus   { return s.status }
func (s *Subscription) BillingCycle() vo.BillingCycle   { return s.billingCycle }
func (s *Subscription) CurrentPeriodStart() time.Time   { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time     { return s.currentPeriodEnd }
func (s *Subscription) TrialEndsAt() *time.Time         { return s.trialEndsAt }
func (s *Subscription) CancelledAt() *time.Time         { return s.cancelledAt }
func (s *Subscription) CancelReason() *string           { return s.cancelReason }
func (s *Subscription) Version() int                    { return s.version }
func (s *Subscription) CreatedAt() time.Time            { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time            { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use).
func (s *Subscription) SetID(subscriptionID uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if subscriptionID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = subscriptionID
	return nil
}

// IsEntitled is the canonical entitlement predicate: the plan's features are
// usable iff the status grants access and the billing period has not lapsed.
// Callers must not duplicate the period comparison elsewhere.
func (s *Subscription) IsEntitled(now time.Time) bool {
	return s.status.GrantsAccess() && !now.After(s.currentPeriodEnd)
}

// IsInTrial reports whether the subscription is inside its trial window.
func (s *Subscription) IsInTrial(now time.Time) bool {
	return s.status == vo.StatusTrial && s.trialEndsAt != nil && !now.After(*s.trialEndsAt)
}

// EffectiveStatus applies lazy expiry: any non-terminal subscription whose
// period has lapsed reads as expired without a state write. Cancelled
// subscriptions also degrade to expired once the paid-through date passes.
func (s *Subscription) EffectiveStatus(now time.Time) vo.SubscriptionStatus {
	if s.status == vo.StatusExpired {
		return vo.StatusExpired
	}
	if now.After(s.currentPeriodEnd) {
		return vo.StatusExpired
	}
	return s.status
}

// Activate converts a trial, recovers a past-due subscription after a
// successful payment, or reinstates a suspended one.
func (s *Subscription) Activate() error {
	if s.status == vo.StatusActive {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}
	s.status = vo.StatusActive
	s.trialEndsAt = nil
	s.touch()
	return nil
}

// MarkPastDue records a failed renewal payment. Entitlement to existing data
// is retained; which features degrade is the caller's policy.
func (s *Subscription) MarkPastDue() error {
	if s.status == vo.StatusPastDue {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusPastDue) {
		return ErrInvalidTransition(s.status.String(), vo.StatusPastDue.String())
	}
	s.status = vo.StatusPastDue
	s.touch()
	return nil
}

// Suspend blocks the subscription by operator action, not billing failure.
func (s *Subscription) Suspend() error {
	if s.status == vo.StatusSuspended {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusSuspended) {
		return ErrInvalidTransition(s.status.String(), vo.StatusSuspended.String())
	}
	s.status = vo.StatusSuspended
	s.touch()
	return nil
}

// Cancel terminates the subscription. Access continues until the period end,
// after which EffectiveStatus reads expired.
func (s *Subscription) Cancel(reason string) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if reason == "" {
		return fmt.Errorf("cancel reason is required")
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}
	now := biztime.NowUTC()
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.cancelReason = &reason
	s.touch()
	return nil
}

// MarkAsExpired persists the lazily-computed expired state.
func (s *Subscription) MarkAsExpired() error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if s.status == vo.StatusCancelled {
		// Terminal already; expiry of a cancelled subscription is purely
		// the lazy EffectiveStatus view.
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return ErrInvalidTransition(s.status.String(), vo.StatusExpired.String())
	}
	s.status = vo.StatusExpired
	s.touch()
	return nil
}

// Renew advances the billing period by one cycle after a successful payment.
func (s *Subscription) Renew() error {
	if s.status != vo.StatusActive && s.status != vo.StatusPastDue {
		return fmt.Errorf("cannot renew subscription with status %s", s.status)
	}
	s.currentPeriodStart = s.currentPeriodEnd
	s.currentPeriodEnd = s.billingCycle.NextPeriodEnd(s.currentPeriodEnd)
	if s.status == vo.StatusPastDue {
		s.status = vo.StatusActive
	}
	s.touch()
	return nil
}

// ChangePlan moves the subscription to a new plan mid-period.
func (s *Subscription) ChangePlan(newPlanID uint) error {
	if newPlanID == 0 {
		return fmt.Errorf("new plan ID is required")
	}
	if newPlanID == s.planID {
		return nil
	}
	if s.status != vo.StatusActive && s.status != vo.StatusTrial {
		return fmt.Errorf("cannot change plan for subscription with status %s", s.status)
	}
	s.planID = newPlanID
	s.touch()
	return nil
}

// ProrationCredit computes the unused share of periodPrice for the remainder
// of the current period, in minor currency units. The credit appears as a
// negative line item on the next invoice.
func (s *Subscription) ProrationCredit(now time.Time, periodPrice int64) int64 {
	if periodPrice <= 0 {
		return 0
	}
	if now.After(s.currentPeriodEnd) || now.Before(s.currentPeriodStart) {
		return 0
	}
	total := s.currentPeriodEnd.Sub(s.currentPeriodStart)
	if total <= 0 {
		return 0
	}
	remaining := s.currentPeriodEnd.Sub(now)
	credit := int64(float64(periodPrice) * remaining.Seconds() / total.Seconds())
	if credit > periodPrice {
		credit = periodPrice
	}
	return credit
}

// Validate performs domain-level validation.
func (s *Subscription) Validate() error {
	if s.tenantID == 0 {
		return fmt.Errorf("tenant ID is required")
	}
	if s.planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.currentPeriodEnd.Before(s.currentPeriodStart) {
		return fmt.Errorf("current period end must not precede period start")
	}
	if s.status == vo.StatusCancelled && s.cancelledAt == nil {
		return fmt.Errorf("cancelled subscription requires cancelled_at")
	}
	return nil
}

func (s *Subscription) touch() {
	s.updatedAt = biztime.NowUTC()
	s.version++
}
