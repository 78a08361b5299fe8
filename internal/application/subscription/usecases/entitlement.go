package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type EntitlementResult struct {
	Entitled bool
	// EffectiveStatus reflects lazy expiry: a lapsed period reads expired
	// even though the stored status has not been rewritten.
	EffectiveStatus vo.SubscriptionStatus
	InTrial         bool
	Subscription    *subscription.Subscription
	Plan            *subscription.Plan
}

// EntitlementService answers "may this tenant use plan features right now".
// It is the only place that combines status and period into the entitlement
// answer; middleware and use cases consume its result instead of re-deriving
// the predicate.
type EntitlementService struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewEntitlementService(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *EntitlementService {
	return &EntitlementService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Check resolves the tenant's entitlement. A tenant without any subscription
// gets ErrNoActiveSubscription; expiry is observed, never written, so there
// is no background sweep to race with.
func (s *EntitlementService) Check(ctx context.Context, tenantID uint) (*EntitlementResult, error) {
	sub, err := s.subscriptionRepo.GetCurrentByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, subscription.ErrNoActiveSubscription
		}
		s.logger.Errorw("failed to get subscription", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	plan, err := s.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		s.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	now := biztime.NowUTC()
	return &EntitlementResult{
		Entitled:        sub.IsEntitled(now),
		EffectiveStatus: sub.EffectiveStatus(now),
		InTrial:         sub.IsInTrial(now),
		Subscription:    sub,
		Plan:            plan,
	}, nil
}

// RequireEntitled is Check plus the gate: it fails with
// ErrNoActiveSubscription when the tenant is not entitled.
func (s *EntitlementService) RequireEntitled(ctx context.Context, tenantID uint) (*EntitlementResult, error) {
	res, err := s.Check(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !res.Entitled {
		return res, subscription.ErrNoActiveSubscription
	}
	return res, nil
}
