package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

// Plan is a subscribable tier. Prices are stored in minor currency units
// (paise). A trialDays of zero means subscriptions on this plan start paid.
type Plan struct {
	id           uint
	sid          string
	code         string
	name         string
	description  string
	priceMonthly int64
	priceYearly  int64
	trialDays    int
	isActive     bool
	isPublic     bool
	limits       vo.PlanLimits
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a plan.
func NewPlan(code, name, description string, priceMonthly, priceYearly int64, trialDays int, limits vo.PlanLimits) (*Plan, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("plan code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if priceMonthly < 0 || priceYearly < 0 {
		return nil, fmt.Errorf("plan price cannot be negative")
	}
	if trialDays < 0 {
		return nil, fmt.Errorf("trial days cannot be negative")
	}
	if limits == nil {
		limits = vo.PlanLimits{}
	}

	now := biztime.NowUTC()
	return &Plan{
		sid:          id.MustGenerateWithPrefix(id.PrefixPlan),
		code:         code,
		name:         name,
		description:  description,
		priceMonthly: priceMonthly,
		priceYearly:  priceYearly,
		trialDays:    trialDays,
		isActive:     true,
		isPublic:     true,
		limits:       limits,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	planID uint,
	sid, code, name, description string,
	priceMonthly, priceYearly int64,
	trialDays int,
	isActive, isPublic bool,
	limits vo.PlanLimits,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("plan code is required")
	}
	if limits == nil {
		limits = vo.PlanLimits{}
	}

	return &Plan{
		id:           planID,
		sid:          sid,
		code:         code,
		name:         name,
		description:  description,
		priceMonthly: priceMonthly,
		priceYearly:  priceYearly,
		trialDays:    trialDays,
		isActive:     isActive,
		isPublic:     isPublic,
		limits:       limits,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint              { return p.id }
func (p *Plan) SID() string           { return p.sid }
func (p *Plan) Code() string          { return p.code }
func (p *Plan) Name() string          { return p.name }
func (p *Plan) Description() string   { return p.description }
func (p *Plan) PriceMonthly() int64   { return p.priceMonthly }
func (p *Plan) PriceYearly() int64    { return p.priceYearly }
func (p *Plan) TrialDays() int        { return p.trialDays }
func (p *Plan) IsActive() bool        { return p.isActive }
func (p *Plan) IsPublic() bool        { return p.isPublic }
func (p *Plan) Limits() vo.PlanLimits { return p.limits }
func (p *Plan) CreatedAt() time.Time  { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time  { return p.updatedAt }

// PriceFor returns the price for a billing cycle in minor units.
func (p *Plan) PriceFor(cycle vo.BillingCycle) int64 {
	if cycle == vo.BillingCycleYearly {
		return p.priceYearly
	}
	return p.priceMonthly
}

// SetID sets the plan ID (only for persistence layer use).
func (p *Plan) SetID(planID uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if planID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = planID
	return nil
}

// Deactivate withdraws the plan from new subscriptions. Existing
// subscriptions keep running on it.
func (p *Plan) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = biztime.NowUTC()
}

// Activate makes the plan subscribable again.
func (p *Plan) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = biztime.NowUTC()
}

// Unlist hides the plan from the public pricing page without deactivating it.
func (p *Plan) Unlist() {
	if !p.isPublic {
		return
	}
	p.isPublic = false
	p.updatedAt = biztime.NowUTC()
}

// UpdateLimits replaces the plan's quota ceilings.
func (p *Plan) UpdateLimits(limits vo.PlanLimits) {
	if limits == nil {
		limits = vo.PlanLimits{}
	}
	p.limits = limits
	p.updatedAt = biztime.NowUTC()
}

// HasTrial reports whether new subscriptions start with a trial period.
func (p *Plan) HasTrial() bool {
	return p.trialDays > 0
}
