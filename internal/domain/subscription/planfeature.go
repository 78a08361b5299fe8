package subscription

import (
	"fmt"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

// PlanFeature enables one feature for a plan and optionally overrides quota
// limits for it. Unique per (plan, feature).
type PlanFeature struct {
	id          uint
	planID      uint
	featureCode string
	enabled     bool
	limits      vo.PlanLimits
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlanFeature creates a feature flag for a plan.
func NewPlanFeature(planID uint, featureCode string, enabled bool, limits vo.PlanLimits) (*PlanFeature, error) {
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if featureCode == "" {
		return nil, fmt.Errorf("feature code is required")
	}
	if limits == nil {
		limits = vo.PlanLimits{}
	}

	now := biztime.NowUTC()
	return &PlanFeature{
		planID:      planID,
		featureCode: featureCode,
		enabled:     enabled,
		limits:      limits,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlanFeature reconstructs a plan feature from persistence.
func ReconstructPlanFeature(
	featureID, planID uint,
	featureCode string,
	enabled bool,
	limits vo.PlanLimits,
	createdAt, updatedAt time.Time,
) (*PlanFeature, error) {
	if featureID == 0 {
		return nil, fmt.Errorf("plan feature ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if featureCode == "" {
		return nil, fmt.Errorf("feature code is required")
	}
	if limits == nil {
		limits = vo.PlanLimits{}
	}

	return &PlanFeature{
		id:          featureID,
		planID:      planID,
		featureCode: featureCode,
		enabled:     enabled,
		limits:      limits,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (f *PlanFeature) ID() uint              { return f.id }
func (f *PlanFeature) PlanID() uint          { return f.planID }
func (f *PlanFeature) FeatureCode() string   { return f.featureCode }
func (f *PlanFeature) Enabled() bool         { return f.enabled }
func (f *PlanFeature) Limits() vo.PlanLimits { return f.limits }
func (f *PlanFeature) CreatedAt() time.Time  { return f.createdAt }
func (f *PlanFeature) UpdatedAt() time.Time  { return f.updatedAt }

// SetID sets the plan feature ID (only for persistence layer use).
func (f *PlanFeature) SetID(featureID uint) error {
	if f.id != 0 {
		return fmt.Errorf("plan feature ID is already set")
	}
	if featureID == 0 {
		return fmt.Errorf("plan feature ID cannot be zero")
	}
	f.id = featureID
	return nil
}

// Enable turns the feature on.
func (f *PlanFeature) Enable() {
	if f.enabled {
		return
	}
	f.enabled = true
	f.updatedAt = biztime.NowUTC()
}

// Disable turns the feature off.
func (f *PlanFeature) Disable() {
	if !f.enabled {
		return
	}
	f.enabled = false
	f.updatedAt = biztime.NowUTC()
}

// UsageLimit returns the quota ceiling for this feature. Feature-level
// overrides win over the base plan limits; zero means unlimited.
func (f *PlanFeature) UsageLimit(planLimits vo.PlanLimits) int64 {
	if v := f.limits.Limit(f.featureCode); v > 0 {
		return v
	}
	return planLimits.Limit(f.featureCode)
}
