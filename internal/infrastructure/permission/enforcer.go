package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// Platform-operator RBAC model. This guards the tenant-agnostic admin API
// (plan and partner management); tenant-scoped authorization goes through
// the access-control resolver, not casbin.
const operatorModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

const (
	RoleOperator = "platform_operator"

	ResourcePlans    = "plans"
	ResourcePartners = "partners"
	ResourceTenants  = "tenants"

	ActionRead  = "read"
	ActionWrite = "write"
)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(operatorModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{enforcer: enforcer, logger: log}
	if err := e.seedOperatorPolicies(); err != nil {
		return nil, err
	}
	return e, nil
}

// seedOperatorPolicies grants the operator role the full admin surface.
// AddPolicy is a no-op for rows that already exist.
func (e *Enforcer) seedOperatorPolicies() error {
	policies := [][]string{
		{RoleOperator, ResourcePlans, ActionRead},
		{RoleOperator, ResourcePlans, ActionWrite},
		{RoleOperator, ResourcePartners, ActionRead},
		{RoleOperator, ResourcePartners, ActionWrite},
		{RoleOperator, ResourceTenants, ActionRead},
		{RoleOperator, ResourceTenants, ActionWrite},
	}
	for _, p := range policies {
		if _, err := e.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to seed operator policy: %w", err)
		}
	}
	return e.enforcer.SavePolicy()
}

// Enforce checks whether a user may perform an action on an admin resource.
func (e *Enforcer) Enforce(userID, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(userID, resource, action)
	if err != nil {
		e.logger.Errorw("operator permission check failed",
			"error", err, "user_id", userID, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// GrantOperator assigns the platform-operator role to a user.
func (e *Enforcer) GrantOperator(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(userID, RoleOperator); err != nil {
		return fmt.Errorf("failed to grant operator role: %w", err)
	}
	return e.enforcer.SavePolicy()
}

// RevokeOperator removes the platform-operator role from a user.
func (e *Enforcer) RevokeOperator(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRoleForUser(userID, RoleOperator); err != nil {
		return fmt.Errorf("failed to revoke operator role: %w", err)
	}
	return e.enforcer.SavePolicy()
}
