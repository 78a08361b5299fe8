package accesscontrol

import "context"

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	// GetByID returns nil, nil when the role does not exist; a dangling
	// membership role reference must fail closed, not crash.
	GetByID(ctx context.Context, id uint) (*Role, error)
	// GetSystemRoleByCode looks up a shared role (tenant_id IS NULL) by its
	// stable code.
	GetSystemRoleByCode(ctx context.Context, code string) (*Role, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]*Role, error)
	ListSystemRoles(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, tenantID uint, name string) (bool, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByCode(ctx context.Context, code string) (*Permission, error)
	ListAll(ctx context.Context) ([]*Permission, error)
	ListByCategory(ctx context.Context, category string) ([]*Permission, error)
}
