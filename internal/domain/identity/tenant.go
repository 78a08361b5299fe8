package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusCancelled TenantStatus = "cancelled"
)

func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusActive, TenantStatusSuspended, TenantStatusCancelled:
		return true
	default:
		return false
	}
}

// Tenant is an organization. partnerID is nil for direct signups.
// currentSubscriptionID points at the single authoritative subscription;
// historical subscription rows stay behind for audit.
type Tenant struct {
	id                    uint
	sid                   string
	name                  string
	partnerID             *uint
	status                TenantStatus
	environment           string
	currentSubscriptionID *uint
	createdAt             time.Time
	updatedAt             time.Time
}

// NewTenant creates a new tenant.
func NewTenant(name, environment string, partnerID *uint) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if environment == "" {
		environment = "production"
	}
	if partnerID != nil && *partnerID == 0 {
		return nil, fmt.Errorf("partner ID cannot be zero when set")
	}

	now := biztime.NowUTC()
	return &Tenant{
		sid:         id.MustGenerateWithPrefix(id.PrefixTenant),
		name:        name,
		partnerID:   partnerID,
		status:      TenantStatusActive,
		environment: environment,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTenant reconstructs a tenant from persistence.
func ReconstructTenant(
	tenantID uint,
	sid, name string,
	partnerID *uint,
	status TenantStatus,
	environment string,
	currentSubscriptionID *uint,
	createdAt, updatedAt time.Time,
) (*Tenant, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid tenant status: %s", status)
	}

	return &Tenant{
		id:                    tenantID,
		sid:                   sid,
		name:                  name,
		partnerID:             partnerID,
		status:                status,
		environment:           environment,
		currentSubscriptionID: currentSubscriptionID,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

func (t *Tenant) ID() uint                     { return t.id }
func (t *Tenant) SID() string                  { return t.sid }
func (t *Tenant) Name() string                 { return t.name }
func (t *Tenant) PartnerID() *uint             { return t.partnerID }
func (t *Tenant) Status() TenantStatus         { return t.status }
func (t *Tenant) Environment() string          { return t.environment }
func (t *Tenant) CurrentSubscriptionID() *uint { return t.currentSubscriptionID }
func (t *Tenant) CreatedAt() time.Time         { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time         { return t.updatedAt }

// SetID sets the tenant ID (only for persistence layer use).
func (t *Tenant) SetID(tenantID uint) error {
	if t.id != 0 {
		return fmt.Errorf("tenant ID is already set")
	}
	if tenantID == 0 {
		return fmt.Errorf("tenant ID cannot be zero")
	}
	t.id = tenantID
	return nil
}

// SetCurrentSubscription points the tenant at its authoritative subscription.
func (t *Tenant) SetCurrentSubscription(subscriptionID uint) error {
	if subscriptionID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	t.currentSubscriptionID = &subscriptionID
	t.updatedAt = biztime.NowUTC()
	return nil
}

// ClearCurrentSubscription detaches the authoritative subscription pointer.
func (t *Tenant) ClearCurrentSubscription() {
	t.currentSubscriptionID = nil
	t.updatedAt = biztime.NowUTC()
}

// Suspend blocks tenant access by administrative action.
func (t *Tenant) Suspend() error {
	if t.status == TenantStatusCancelled {
		return fmt.Errorf("cannot suspend a cancelled tenant")
	}
	t.status = TenantStatusSuspended
	t.updatedAt = biztime.NowUTC()
	return nil
}

// Reactivate restores a suspended tenant.
func (t *Tenant) Reactivate() error {
	if t.status != TenantStatusSuspended {
		return fmt.Errorf("cannot reactivate tenant with status %s", t.status)
	}
	t.status = TenantStatusActive
	t.updatedAt = biztime.NowUTC()
	return nil
}

// Cancel terminates the tenant.
func (t *Tenant) Cancel() {
	if t.status == TenantStatusCancelled {
		return
	}
	t.status = TenantStatusCancelled
	t.updatedAt = biztime.NowUTC()
}

// IsActive reports whether the tenant may be operated on.
func (t *Tenant) IsActive() bool {
	return t.status == TenantStatusActive
}
