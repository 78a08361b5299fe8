package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	TenantID     uint
	PlanCode     string
	BillingCycle string
	// SkipTrial starts the subscription active even when the plan offers
	// trial days (direct paid signups).
	SkipTrial bool
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	tenantRepo       identity.TenantRepository
	txManager        Transactor
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	tenantRepo identity.TenantRepository,
	txManager Transactor,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		tenantRepo:       tenantRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute enrolls a tenant on a plan. The subscription row and the tenant's
// current-subscription pointer commit together; a tenant can never end up
// with two authoritative subscriptions.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		if errors.Is(err, identity.ErrTenantNotFound) {
			return nil, err
		}
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil {
		return nil, identity.ErrTenantNotFound
	}
	if tenant.CurrentSubscriptionID() != nil {
		return nil, subscription.ErrTenantAlreadySubscribed
	}

	plan, err := uc.planRepo.GetByCode(ctx, cmd.PlanCode)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, err
		}
		uc.logger.Errorw("failed to get plan", "error", err, "plan_code", cmd.PlanCode)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if !plan.IsActive() {
		return nil, subscription.ErrPlanInactive
	}

	cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, err
	}

	trialDays := plan.TrialDays()
	if cmd.SkipTrial {
		trialDays = 0
	}

	sub, err := subscription.NewSubscription(cmd.TenantID, plan.ID(), tenant.PartnerID(), cycle, trialDays)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		if err := tenant.SetCurrentSubscription(sub.ID()); err != nil {
			return err
		}
		return uc.tenantRepo.Update(txCtx, tenant)
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "tenant_id", cmd.TenantID)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"tenant_id", cmd.TenantID,
		"subscription_id", sub.ID(),
		"plan_code", plan.Code(),
		"status", sub.Status().String())
	return sub, nil
}
