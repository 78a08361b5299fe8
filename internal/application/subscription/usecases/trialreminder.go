package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type TrialReminderUseCase struct {
	subscriptionRepo subscription.Repository
	sender           TrialReminderSender
	reminderDays     int
	logger           logger.Interface
}

func NewTrialReminderUseCase(
	subscriptionRepo subscription.Repository,
	sender TrialReminderSender,
	reminderDays int,
	logger logger.Interface,
) *TrialReminderUseCase {
	if reminderDays <= 0 {
		reminderDays = 3
	}
	return &TrialReminderUseCase{
		subscriptionRepo: subscriptionRepo,
		sender:           sender,
		reminderDays:     reminderDays,
		logger:           logger,
	}
}

// Execute sends reminders for trials ending within the configured window.
// Delivery failures are logged per tenant and do not abort the batch.
func (uc *TrialReminderUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	until := now.AddDate(0, 0, uc.reminderDays)

	subs, err := uc.subscriptionRepo.ListTrialsEndingBetween(ctx, now, until)
	if err != nil {
		return 0, fmt.Errorf("failed to list ending trials: %w", err)
	}

	sent := 0
	for _, sub := range subs {
		end := sub.TrialEndsAt()
		if end == nil {
			continue
		}
		daysLeft := int(end.Sub(now) / (24 * time.Hour))
		if err := uc.sender.SendTrialEndingReminder(ctx, sub.TenantID(), daysLeft); err != nil {
			uc.logger.Warnw("failed to send trial reminder",
				"error", err,
				"tenant_id", sub.TenantID(),
				"subscription_id", sub.ID())
			continue
		}
		sent++
	}

	uc.logger.Infow("trial reminders processed", "candidates", len(subs), "sent", sent)
	return sent, nil
}
