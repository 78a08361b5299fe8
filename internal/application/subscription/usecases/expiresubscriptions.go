package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

const expireSweepBatchSize = 200

// ExpireSubscriptionsUseCase materializes lazy expiry: subscriptions past
// their period end read as expired through EffectiveStatus, and this sweep
// persists that state so reports and listings see it without recomputing.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute marks overdue subscriptions as expired and returns the number
// updated. Version conflicts are skipped; the next sweep picks them up.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	expired := 0

	statuses := []vo.SubscriptionStatus{
		vo.StatusTrial,
		vo.StatusActive,
		vo.StatusPastDue,
		vo.StatusSuspended,
	}

	for _, status := range statuses {
		offset := 0
		for {
			subs, err := uc.subscriptionRepo.ListByStatus(ctx, status.String(), expireSweepBatchSize, offset)
			if err != nil {
				return expired, fmt.Errorf("failed to list %s subscriptions: %w", status, err)
			}

			updated := 0
			for _, sub := range subs {
				if !now.After(sub.CurrentPeriodEnd()) {
					continue
				}
				if err := sub.MarkAsExpired(); err != nil {
					uc.logger.Warnw("skipping subscription that cannot expire",
						"error", err,
						"subscription_id", sub.ID(),
						"status", sub.Status().String())
					continue
				}
				if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
					uc.logger.Warnw("failed to persist expired subscription",
						"error", err,
						"subscription_id", sub.ID(),
						"tenant_id", sub.TenantID())
					continue
				}
				updated++
			}
			expired += updated

			if len(subs) < expireSweepBatchSize {
				break
			}
			// Updated rows left this status filter, so only the rows that
			// stayed push the offset forward.
			offset += expireSweepBatchSize - updated
		}
	}

	if expired > 0 {
		uc.logger.Infow("expired subscriptions persisted", "count", expired)
	}
	return expired, nil
}
