package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

type PartnerStatus string

const (
	PartnerStatusActive    PartnerStatus = "active"
	PartnerStatusSuspended PartnerStatus = "suspended"
)

func (s PartnerStatus) IsValid() bool {
	return s == PartnerStatusActive || s == PartnerStatusSuspended
}

const (
	partnerSlugLength         = 8
	partnerReferralCodeLength = 10
)

// Partner is a reseller. Tenants signed up under a partner carry its ID for
// commission attribution on subscription revenue.
type Partner struct {
	id             uint
	sid            string
	name           string
	slug           string
	referralCode   string
	commissionRate float64
	status         PartnerStatus
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPartner creates a new partner. Slug and referral code are generated here,
// not in a persistence hook, so uniqueness retries stay visible to the caller.
func NewPartner(name string, commissionRate float64) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("partner name is required")
	}
	if commissionRate < 0 || commissionRate > 100 {
		return nil, fmt.Errorf("commission rate must be between 0 and 100")
	}

	slug, err := id.Slug(partnerSlugLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate partner slug: %w", err)
	}
	referralCode, err := id.Slug(partnerReferralCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate referral code: %w", err)
	}

	now := biztime.NowUTC()
	return &Partner{
		sid:            id.MustGenerateWithPrefix(id.PrefixPartner),
		name:           name,
		slug:           slug,
		referralCode:   referralCode,
		commissionRate: commissionRate,
		status:         PartnerStatusActive,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructPartner reconstructs a partner from persistence.
func ReconstructPartner(
	partnerID uint,
	sid, name, slug, referralCode string,
	commissionRate float64,
	status PartnerStatus,
	createdAt, updatedAt time.Time,
) (*Partner, error) {
	if partnerID == 0 {
		return nil, fmt.Errorf("partner ID cannot be zero")
	}
	if slug == "" {
		return nil, fmt.Errorf("partner slug is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid partner status: %s", status)
	}

	return &Partner{
		id:             partnerID,
		sid:            sid,
		name:           name,
		slug:           slug,
		referralCode:   referralCode,
		commissionRate: commissionRate,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (p *Partner) ID() uint                { return p.id }
func (p *Partner) SID() string             { return p.sid }
func (p *Partner) Name() string            { return p.name }
func (p *Partner) Slug() string            { return p.slug }
func (p *Partner) ReferralCode() string    { return p.referralCode }
func (p *Partner) CommissionRate() float64 { return p.commissionRate }
func (p *Partner) Status() PartnerStatus   { return p.status }
func (p *Partner) CreatedAt() time.Time    { return p.createdAt }
func (p *Partner) UpdatedAt() time.Time    { return p.updatedAt }

// SetID sets the partner ID (only for persistence layer use).
func (p *Partner) SetID(partnerID uint) error {
	if p.id != 0 {
		return fmt.Errorf("partner ID is already set")
	}
	if partnerID == 0 {
		return fmt.Errorf("partner ID cannot be zero")
	}
	p.id = partnerID
	return nil
}

// RegenerateSlug replaces the slug after a uniqueness conflict.
func (p *Partner) RegenerateSlug() error {
	slug, err := id.Slug(partnerSlugLength)
	if err != nil {
		return fmt.Errorf("failed to regenerate partner slug: %w", err)
	}
	p.slug = slug
	p.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateCommissionRate adjusts the partner's commission percentage.
func (p *Partner) UpdateCommissionRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("commission rate must be between 0 and 100")
	}
	p.commissionRate = rate
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Suspend blocks the partner from onboarding new tenants.
func (p *Partner) Suspend() {
	p.status = PartnerStatusSuspended
	p.updatedAt = biztime.NowUTC()
}

// IsActive reports whether the partner may onboard tenants.
func (p *Partner) IsActive() bool {
	return p.status == PartnerStatusActive
}
