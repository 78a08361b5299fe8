package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type CreatePlanCommand struct {
	Code         string
	Name         string
	Description  string
	PriceMonthly int64
	PriceYearly  int64
	TrialDays    int
	Limits       map[string]int64
	Features     []PlanFeatureSpec
}

type PlanFeatureSpec struct {
	FeatureCode string
	Enabled     bool
	Limits      map[string]int64
}

type CreatePlanUseCase struct {
	planRepo    subscription.PlanRepository
	featureRepo subscription.PlanFeatureRepository
	txManager   Transactor
	logger      logger.Interface
}

func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	featureRepo subscription.PlanFeatureRepository,
	txManager Transactor,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:    planRepo,
		featureRepo: featureRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.Plan, error) {
	plan, err := subscription.NewPlan(cmd.Code, cmd.Name, cmd.Description, cmd.PriceMonthly, cmd.PriceYearly, cmd.TrialDays, vo.NewPlanLimits(cmd.Limits))
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.planRepo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		for _, spec := range cmd.Features {
			feature, err := subscription.NewPlanFeature(plan.ID(), spec.FeatureCode, spec.Enabled, vo.NewPlanLimits(spec.Limits))
			if err != nil {
				return err
			}
			if err := uc.featureRepo.Create(txCtx, feature); err != nil {
				return fmt.Errorf("failed to create plan feature: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "code", cmd.Code)
		return nil, err
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID(), "code", plan.Code())
	return plan, nil
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
}

func NewListPlansUseCase(planRepo subscription.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

// Execute lists plans; publicOnly restricts to those listed for signup.
func (uc *ListPlansUseCase) Execute(ctx context.Context, publicOnly bool) ([]*subscription.Plan, error) {
	plans, err := uc.planRepo.List(ctx, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
