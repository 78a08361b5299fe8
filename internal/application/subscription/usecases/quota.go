package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type QuotaCheckResult struct {
	FeatureCode string
	// Used is the count after the increment.
	Used int64
	// Limit is the effective cap; 0 means unlimited.
	Limit int64
}

// QuotaService meters feature consumption against plan limits. The
// check-and-increment is delegated to the repository's atomic conditional
// update; this service never reads a count and writes it back.
type QuotaService struct {
	entitlement *EntitlementService
	featureRepo subscription.PlanFeatureRepository
	usageRepo   subscription.UsageRepository
	logger      logger.Interface
}

func NewQuotaService(
	entitlement *EntitlementService,
	featureRepo subscription.PlanFeatureRepository,
	usageRepo subscription.UsageRepository,
	logger logger.Interface,
) *QuotaService {
	return &QuotaService{
		entitlement: entitlement,
		featureRepo: featureRepo,
		usageRepo:   usageRepo,
		logger:      logger,
	}
}

// CheckAndIncrement consumes one unit of a metered feature for the tenant's
// current billing period. Under a concurrent burst at the limit, exactly
// limit increments succeed; the rest fail with ErrQuotaExceeded and leave
// the ledger untouched.
func (s *QuotaService) CheckAndIncrement(ctx context.Context, tenantID uint, featureCode string) (*QuotaCheckResult, error) {
	res, err := s.entitlement.RequireEntitled(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	limit, err := s.effectiveLimit(ctx, res, featureCode)
	if err != nil {
		return nil, err
	}

	sub := res.Subscription
	used, err := s.usageRepo.CheckAndIncrement(ctx, sub.ID(), featureCode, sub.CurrentPeriodStart(), sub.CurrentPeriodEnd(), limit)
	if err != nil {
		if err == subscription.ErrQuotaExceeded {
			s.logger.Infow("quota exceeded",
				"tenant_id", tenantID,
				"feature_code", featureCode,
				"used", used,
				"limit", limit)
			return nil, fmt.Errorf("%w: %s", subscription.ErrQuotaExceeded, featureCode)
		}
		s.logger.Errorw("failed to increment usage", "error", err, "tenant_id", tenantID, "feature_code", featureCode)
		return nil, fmt.Errorf("failed to increment usage: %w", err)
	}

	return &QuotaCheckResult{FeatureCode: featureCode, Used: used, Limit: limit}, nil
}

// Release gives back one unit, used when a metered resource is deleted
// within the same billing period.
func (s *QuotaService) Release(ctx context.Context, tenantID uint, featureCode string) error {
	res, err := s.entitlement.Check(ctx, tenantID)
	if err != nil {
		return err
	}
	sub := res.Subscription
	if err := s.usageRepo.Decrement(ctx, sub.ID(), featureCode, sub.CurrentPeriodStart()); err != nil {
		return fmt.Errorf("failed to decrement usage: %w", err)
	}
	return nil
}

// Usage reports the current consumption without incrementing.
func (s *QuotaService) Usage(ctx context.Context, tenantID uint, featureCode string) (*QuotaCheckResult, error) {
	res, err := s.entitlement.Check(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	limit, err := s.effectiveLimit(ctx, res, featureCode)
	if err != nil {
		return nil, err
	}

	sub := res.Subscription
	row, err := s.usageRepo.Get(ctx, sub.ID(), featureCode, sub.CurrentPeriodStart())
	if err != nil {
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	var used int64
	if row != nil {
		used = row.UsageCount()
	}
	return &QuotaCheckResult{FeatureCode: featureCode, Used: used, Limit: limit}, nil
}

// effectiveLimit resolves the cap for a feature: a per-feature override on
// the plan wins over the plan-level limit map; absent both, the feature is
// unlimited.
func (s *QuotaService) effectiveLimit(ctx context.Context, res *EntitlementResult, featureCode string) (int64, error) {
	feature, err := s.featureRepo.GetByPlanAndCode(ctx, res.Plan.ID(), featureCode)
	if err != nil {
		return 0, fmt.Errorf("failed to get plan feature: %w", err)
	}
	if feature != nil {
		if !feature.Enabled() {
			return 0, fmt.Errorf("%w: %s", subscription.ErrFeatureNotInPlan, featureCode)
		}
		return feature.UsageLimit(res.Plan.Limits()), nil
	}
	return res.Plan.Limits().Limit(featureCode), nil
}
