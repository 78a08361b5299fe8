package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type ChangePlanCommand struct {
	TenantID    uint
	NewPlanCode string
}

type ChangePlanResult struct {
	Subscription *subscription.Subscription
	// ProrationCredit is the unused share of the old plan's period price in
	// minor units, to appear as a negative line item on the next invoice.
	ProrationCredit int64
	OldPlanCode     string
	NewPlanCode     string
}

type ChangePlanUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Execute moves the tenant's subscription to a new plan mid-period and
// computes the proration credit for the unused remainder of the old plan.
func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) (*ChangePlanResult, error) {
	sub, err := uc.subscriptionRepo.GetCurrentByTenantID(ctx, cmd.TenantID)
	if err != nil {
		return nil, err
	}

	oldPlan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get current plan: %w", err)
	}

	newPlan, err := uc.planRepo.GetByCode(ctx, cmd.NewPlanCode)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get new plan: %w", err)
	}
	if !newPlan.IsActive() {
		return nil, subscription.ErrPlanInactive
	}

	now := biztime.NowUTC()
	credit := sub.ProrationCredit(now, oldPlan.PriceFor(sub.BillingCycle()))

	if err := sub.ChangePlan(newPlan.ID()); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to change plan: %w", err)
	}

	uc.logger.Infow("plan changed",
		"tenant_id", cmd.TenantID,
		"subscription_id", sub.ID(),
		"old_plan", oldPlan.Code(),
		"new_plan", newPlan.Code(),
		"proration_credit", credit)

	return &ChangePlanResult{
		Subscription:    sub,
		ProrationCredit: credit,
		OldPlanCode:     oldPlan.Code(),
		NewPlanCode:     newPlan.Code(),
	}, nil
}
