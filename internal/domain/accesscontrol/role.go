package accesscontrol

import (
	"fmt"
	"strings"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

// Role grants a set of permission codes. A system role (tenantID nil) is
// shared across all tenants and cannot be deleted; a tenant role belongs to
// one tenant. Role names are unique within their tenant scope.
type Role struct {
	id          uint
	sid         string
	tenantID    *uint
	code        string
	name        string
	description string
	permissions []string
	isSystem    bool
	isDefault   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTenantRole creates a custom role scoped to a tenant.
func NewTenantRole(tenantID uint, name, description string, permissions []string) (*Role, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("role name too long (max 50 characters)")
	}

	now := biztime.NowUTC()
	return &Role{
		sid:         id.MustGenerateWithPrefix(id.PrefixRole),
		tenantID:    &tenantID,
		code:        roleCode(name),
		name:        name,
		description: description,
		permissions: dedupe(permissions),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewSystemRole creates a shared role available to every tenant. Only the
// seed path calls this; system roles are immutable reference data at runtime.
func NewSystemRole(code, name string, permissions []string, isDefault bool) (*Role, error) {
	if code == "" {
		return nil, fmt.Errorf("system role code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("system role name is required")
	}

	now := biztime.NowUTC()
	return &Role{
		sid:         id.MustGenerateWithPrefix(id.PrefixRole),
		code:        code,
		name:        name,
		permissions: dedupe(permissions),
		isSystem:    true,
		isDefault:   isDefault,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructRole reconstructs a role from persistence.
func ReconstructRole(
	roleID uint,
	sid string,
	tenantID *uint,
	code, name, description string,
	permissions []string,
	isSystem, isDefault bool,
	createdAt, updatedAt time.Time,
) (*Role, error) {
	if roleID == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if isSystem && tenantID != nil {
		return nil, fmt.Errorf("system role cannot be tenant-scoped")
	}
	if !isSystem && tenantID == nil {
		return nil, fmt.Errorf("tenant role requires a tenant ID")
	}
	if permissions == nil {
		permissions = []string{}
	}

	return &Role{
		id:          roleID,
		sid:         sid,
		tenantID:    tenantID,
		code:        code,
		name:        name,
		description: description,
		permissions: permissions,
		isSystem:    isSystem,
		isDefault:   isDefault,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Role) ID() uint              { return r.id }
func (r *Role) SID() string           { return r.sid }
func (r *Role) TenantID() *uint       { return r.tenantID }
func (r *Role) Code() string          { return r.code }
func (r *Role) Name() string          { return r.name }
func (r *Role) Description() string   { return r.description }
func (r *Role) IsSystem() bool        { return r.isSystem }
func (r *Role) IsDefault() bool       { return r.isDefault }
func (r *Role) CreatedAt() time.Time  { return r.createdAt }
func (r *Role) UpdatedAt() time.Time  { return r.updatedAt }

// Permissions returns a copy of the role's permission codes.
func (r *Role) Permissions() []string {
	out := make([]string, len(r.permissions))
	copy(out, r.permissions)
	return out
}

// PermissionSet returns the role's permissions as a set.
func (r *Role) PermissionSet() PermissionSet {
	return NewPermissionSet(r.permissions...)
}

// SetID sets the role ID (only for persistence layer use).
func (r *Role) SetID(roleID uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if roleID == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = roleID
	return nil
}

// Rename updates the role name. System roles are immutable.
func (r *Role) Rename(name string) error {
	if r.isSystem {
		return ErrSystemRoleImmutable
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("role name is required")
	}
	r.name = name
	r.code = roleCode(name)
	r.updatedAt = biztime.NowUTC()
	return nil
}

// ReplacePermissions swaps the role's permission codes. System roles are
// immutable at runtime.
func (r *Role) ReplacePermissions(permissions []string) error {
	if r.isSystem {
		return ErrSystemRoleImmutable
	}
	r.permissions = dedupe(permissions)
	r.updatedAt = biztime.NowUTC()
	return nil
}

// CanDelete reports whether this role may be deleted.
func (r *Role) CanDelete() bool {
	return !r.isSystem
}

// BelongsToTenant reports whether the role is usable inside the tenant:
// either a system role or a role owned by that tenant.
func (r *Role) BelongsToTenant(tenantID uint) bool {
	if r.isSystem {
		return true
	}
	return r.tenantID != nil && *r.tenantID == tenantID
}

func roleCode(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
