package identity

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	GetBySID(ctx context.Context, sid string) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
	// Delete soft-deletes the tenant.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TenantFilter) ([]*Tenant, int64, error)
}

type TenantFilter struct {
	PartnerID *uint
	Status    *string
	Page      int
	PageSize  int
}

type PartnerRepository interface {
	Create(ctx context.Context, partner *Partner) error
	GetByID(ctx context.Context, id uint) (*Partner, error)
	GetBySlug(ctx context.Context, slug string) (*Partner, error)
	GetByReferralCode(ctx context.Context, code string) (*Partner, error)
	Update(ctx context.Context, partner *Partner) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *Membership) error
	// GetByUserAndTenant returns the unique live membership for the pair,
	// or nil if none exists. Soft-deleted rows are excluded.
	GetByUserAndTenant(ctx context.Context, userID, tenantID uint) (*Membership, error)
	GetByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*Membership, int64, error)
	Update(ctx context.Context, membership *Membership) error
	// Delete soft-deletes the membership.
	Delete(ctx context.Context, id uint) error
	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
	// ClearRoleAssignments detaches the given custom role from every
	// membership in the tenant that references it.
	ClearRoleAssignments(ctx context.Context, tenantID, roleID uint) error
}
