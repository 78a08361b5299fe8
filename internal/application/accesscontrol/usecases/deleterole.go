package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type DeleteRoleCommand struct {
	TenantID uint
	RoleID   uint
}

type DeleteRoleUseCase struct {
	roleRepo       accesscontrol.RoleRepository
	membershipRepo identity.MembershipRepository
	txManager      Transactor
	cache          PermissionCache
	logger         logger.Interface
}

func NewDeleteRoleUseCase(
	roleRepo accesscontrol.RoleRepository,
	membershipRepo identity.MembershipRepository,
	txManager Transactor,
	logger logger.Interface,
) *DeleteRoleUseCase {
	return &DeleteRoleUseCase{
		roleRepo:       roleRepo,
		membershipRepo: membershipRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// SetCache enables permission cache invalidation after deletion (optional).
func (uc *DeleteRoleUseCase) SetCache(cache PermissionCache) {
	uc.cache = cache
}

// Execute deletes a tenant role. Memberships referencing it are detached in
// the same transaction so they fall back to their legacy role instead of
// carrying a dangling (fail-closed) reference.
func (uc *DeleteRoleUseCase) Execute(ctx context.Context, cmd DeleteRoleCommand) error {
	role, err := uc.roleRepo.GetByID(ctx, cmd.RoleID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return accesscontrol.ErrRoleNotFound
	}
	if !role.CanDelete() {
		return accesscontrol.ErrSystemRoleUndeletable
	}
	if !role.BelongsToTenant(cmd.TenantID) {
		return accesscontrol.ErrRoleWrongTenant
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.membershipRepo.ClearRoleAssignments(txCtx, cmd.TenantID, cmd.RoleID); err != nil {
			return fmt.Errorf("failed to clear role assignments: %w", err)
		}
		if err := uc.roleRepo.Delete(txCtx, cmd.RoleID); err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete role", "error", err, "role_id", cmd.RoleID)
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateTenant(ctx, cmd.TenantID); err != nil {
			uc.logger.Warnw("failed to invalidate permission cache", "error", err, "tenant_id", cmd.TenantID)
		}
	}

	uc.logger.Infow("role deleted", "tenant_id", cmd.TenantID, "role_id", cmd.RoleID)
	return nil
}
