package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// TransitionSubscriptionUseCase covers the operator-driven lifecycle moves
// that share a load-mutate-save shape: activate, suspend, mark past due,
// cancel.
type TransitionSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewTransitionSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *TransitionSubscriptionUseCase {
	return &TransitionSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Activate converts a trial or recovers a past-due/suspended subscription.
func (uc *TransitionSubscriptionUseCase) Activate(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	return uc.apply(ctx, tenantID, "activate", func(s *subscription.Subscription) error {
		return s.Activate()
	})
}

// Suspend blocks the subscription by operator action.
func (uc *TransitionSubscriptionUseCase) Suspend(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	return uc.apply(ctx, tenantID, "suspend", func(s *subscription.Subscription) error {
		return s.Suspend()
	})
}

// MarkPastDue records a failed renewal payment.
func (uc *TransitionSubscriptionUseCase) MarkPastDue(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	return uc.apply(ctx, tenantID, "mark past due", func(s *subscription.Subscription) error {
		return s.MarkPastDue()
	})
}

// Cancel terminates the subscription; access continues until period end.
func (uc *TransitionSubscriptionUseCase) Cancel(ctx context.Context, tenantID uint, reason string) (*subscription.Subscription, error) {
	return uc.apply(ctx, tenantID, "cancel", func(s *subscription.Subscription) error {
		return s.Cancel(reason)
	})
}

func (uc *TransitionSubscriptionUseCase) apply(ctx context.Context, tenantID uint, action string, mutate func(*subscription.Subscription) error) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetCurrentByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := mutate(sub); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "tenant_id", tenantID, "action", action)
		return nil, fmt.Errorf("failed to %s subscription: %w", action, err)
	}

	uc.logger.Infow("subscription transitioned",
		"tenant_id", tenantID,
		"subscription_id", sub.ID(),
		"action", action,
		"status", sub.Status().String())
	return sub, nil
}
