package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute advances the billing period by one cycle after a successful
// renewal payment. A past-due subscription recovers to active.
func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetCurrentByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := sub.Renew(); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}

	uc.logger.Infow("subscription renewed",
		"tenant_id", tenantID,
		"subscription_id", sub.ID(),
		"period_end", sub.CurrentPeriodEnd())
	return sub, nil
}
