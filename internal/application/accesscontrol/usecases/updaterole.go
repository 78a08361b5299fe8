package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type UpdateRoleCommand struct {
	TenantID    uint
	RoleID      uint
	Name        *string
	Permissions []string
	// ReplacePermissions distinguishes "set to empty" from "leave alone".
	ReplacePermissions bool
}

type UpdateRoleUseCase struct {
	roleRepo accesscontrol.RoleRepository
	cache    PermissionCache
	logger   logger.Interface
}

func NewUpdateRoleUseCase(
	roleRepo accesscontrol.RoleRepository,
	logger logger.Interface,
) *UpdateRoleUseCase {
	return &UpdateRoleUseCase{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// SetCache enables permission cache invalidation after updates (optional).
func (uc *UpdateRoleUseCase) SetCache(cache PermissionCache) {
	uc.cache = cache
}

func (uc *UpdateRoleUseCase) Execute(ctx context.Context, cmd UpdateRoleCommand) (*accesscontrol.Role, error) {
	role, err := uc.loadTenantRole(ctx, cmd.TenantID, cmd.RoleID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := role.Rename(*cmd.Name); err != nil {
			return nil, err
		}
	}
	if cmd.ReplacePermissions {
		if err := role.ReplacePermissions(cmd.Permissions); err != nil {
			return nil, err
		}
	}

	if err := uc.roleRepo.Update(ctx, role); err != nil {
		uc.logger.Errorw("failed to update role", "error", err, "role_id", cmd.RoleID)
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	uc.invalidate(ctx, cmd.TenantID)
	uc.logger.Infow("role updated", "tenant_id", cmd.TenantID, "role_id", cmd.RoleID)
	return role, nil
}

func (uc *UpdateRoleUseCase) loadTenantRole(ctx context.Context, tenantID, roleID uint) (*accesscontrol.Role, error) {
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, accesscontrol.ErrRoleNotFound
	}
	if role.IsSystem() {
		return nil, accesscontrol.ErrSystemRoleImmutable
	}
	if !role.BelongsToTenant(tenantID) {
		return nil, accesscontrol.ErrRoleWrongTenant
	}
	return role, nil
}

func (uc *UpdateRoleUseCase) invalidate(ctx context.Context, tenantID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateTenant(ctx, tenantID); err != nil {
		uc.logger.Warnw("failed to invalidate permission cache", "error", err, "tenant_id", tenantID)
	}
}
