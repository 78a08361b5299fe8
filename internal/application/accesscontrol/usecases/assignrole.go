package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type AssignRoleCommand struct {
	TenantID     uint
	TargetUserID uint
	// RoleID nil clears the custom assignment so the legacy role applies.
	RoleID *uint
}

type AssignRoleUseCase struct {
	membershipRepo identity.MembershipRepository
	roleRepo       accesscontrol.RoleRepository
	cache          PermissionCache
	logger         logger.Interface
}

func NewAssignRoleUseCase(
	membershipRepo identity.MembershipRepository,
	roleRepo accesscontrol.RoleRepository,
	logger logger.Interface,
) *AssignRoleUseCase {
	return &AssignRoleUseCase{
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
		logger:         logger,
	}
}

// SetCache enables permission cache invalidation after assignment (optional).
func (uc *AssignRoleUseCase) SetCache(cache PermissionCache) {
	uc.cache = cache
}

func (uc *AssignRoleUseCase) Execute(ctx context.Context, cmd AssignRoleCommand) (*identity.Membership, error) {
	m, err := uc.membershipRepo.GetByUserAndTenant(ctx, cmd.TargetUserID, cmd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil {
		return nil, identity.ErrNotTenantMember
	}

	if cmd.RoleID == nil {
		m.ClearRole()
	} else {
		role, err := uc.roleRepo.GetByID(ctx, *cmd.RoleID)
		if err != nil {
			return nil, fmt.Errorf("failed to get role: %w", err)
		}
		if role == nil {
			return nil, accesscontrol.ErrRoleNotFound
		}
		if !role.BelongsToTenant(cmd.TenantID) {
			return nil, accesscontrol.ErrRoleWrongTenant
		}
		if err := m.AssignRole(role.ID()); err != nil {
			return nil, err
		}
	}

	if err := uc.membershipRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update membership", "error", err, "user_id", cmd.TargetUserID, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateUser(ctx, cmd.TargetUserID, cmd.TenantID); err != nil {
			uc.logger.Warnw("failed to invalidate permission cache", "error", err, "user_id", cmd.TargetUserID)
		}
	}

	uc.logger.Infow("membership role updated", "tenant_id", cmd.TenantID, "user_id", cmd.TargetUserID)
	return m, nil
}
