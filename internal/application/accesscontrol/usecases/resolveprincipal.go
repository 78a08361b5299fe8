package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type ResolvePrincipalCommand struct {
	UserID   uint
	TenantID uint
}

type ResolvePrincipalUseCase struct {
	userRepo       identity.UserRepository
	membershipRepo identity.MembershipRepository
	logger         logger.Interface
}

func NewResolvePrincipalUseCase(
	userRepo identity.UserRepository,
	membershipRepo identity.MembershipRepository,
	logger logger.Interface,
) *ResolvePrincipalUseCase {
	return &ResolvePrincipalUseCase{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// Execute resolves the acting principal for a tenant-scoped request.
// Super-admins bypass membership entirely; everyone else must hold an active
// membership row or the request fails with ErrNotTenantMember.
func (uc *ResolvePrincipalUseCase) Execute(ctx context.Context, cmd ResolvePrincipalCommand) (accesscontrol.Principal, error) {
	if cmd.UserID == 0 || cmd.TenantID == 0 {
		return accesscontrol.Principal{}, fmt.Errorf("user ID and tenant ID are required")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return accesscontrol.Principal{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil || !u.IsActive() {
		return accesscontrol.Principal{}, identity.ErrUserNotFound
	}

	if u.IsSuperAdmin() {
		return accesscontrol.NewSuperAdminPrincipal(cmd.UserID, cmd.TenantID), nil
	}

	m, err := uc.membershipRepo.GetByUserAndTenant(ctx, cmd.UserID, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get membership", "error", err, "user_id", cmd.UserID, "tenant_id", cmd.TenantID)
		return accesscontrol.Principal{}, fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil {
		return accesscontrol.Principal{}, identity.ErrNotTenantMember
	}

	return accesscontrol.NewMemberPrincipal(m)
}
