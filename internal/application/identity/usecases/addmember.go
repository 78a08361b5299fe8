package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type AddMemberCommand struct {
	TenantID   uint
	Email      string
	LegacyRole string
}

// AddMemberUseCase attaches an existing user to a tenant with a legacy
// role. Custom role assignment happens separately through the role
// assignment flow.
type AddMemberUseCase struct {
	userRepo       identity.UserRepository
	membershipRepo identity.MembershipRepository
	logger         logger.Interface
}

func NewAddMemberUseCase(
	userRepo identity.UserRepository,
	membershipRepo identity.MembershipRepository,
	logger logger.Interface,
) *AddMemberUseCase {
	return &AddMemberUseCase{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, cmd AddMemberCommand) (*identity.Membership, error) {
	user, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.IsActive() {
		return nil, identity.ErrUserNotFound
	}

	existing, err := uc.membershipRepo.GetByUserAndTenant(ctx, user.ID(), cmd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, identity.ErrMembershipExists
	}

	role := identity.LegacyRole(cmd.LegacyRole)
	membership, err := identity.NewMembership(user.ID(), cmd.TenantID, role, false)
	if err != nil {
		return nil, err
	}
	if err := uc.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	uc.logger.Infow("member added",
		"tenant_id", cmd.TenantID,
		"user_id", user.ID(),
		"legacy_role", role.String())
	return membership, nil
}

type RemoveMemberCommand struct {
	TenantID     uint
	TargetUserID uint
}

type RemoveMemberUseCase struct {
	membershipRepo identity.MembershipRepository
	logger         logger.Interface
}

func NewRemoveMemberUseCase(membershipRepo identity.MembershipRepository, logger logger.Interface) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{membershipRepo: membershipRepo, logger: logger}
}

func (uc *RemoveMemberUseCase) Execute(ctx context.Context, cmd RemoveMemberCommand) error {
	membership, err := uc.membershipRepo.GetByUserAndTenant(ctx, cmd.TargetUserID, cmd.TenantID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if membership == nil {
		return identity.ErrNotTenantMember
	}
	if membership.IsOwner() {
		return fmt.Errorf("cannot remove the tenant owner")
	}
	if err := uc.membershipRepo.Delete(ctx, membership.ID()); err != nil {
		return err
	}
	uc.logger.Infow("member removed", "tenant_id", cmd.TenantID, "user_id", cmd.TargetUserID)
	return nil
}

type ListMembersUseCase struct {
	membershipRepo identity.MembershipRepository
	userRepo       identity.UserRepository
}

func NewListMembersUseCase(membershipRepo identity.MembershipRepository, userRepo identity.UserRepository) *ListMembersUseCase {
	return &ListMembersUseCase{membershipRepo: membershipRepo, userRepo: userRepo}
}

// Member pairs a membership with its user for listing.
type Member struct {
	Membership *identity.Membership
	User       *identity.User
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, tenantID uint, page, pageSize int) ([]Member, int64, error) {
	memberships, total, err := uc.membershipRepo.GetByTenant(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	members := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		user, err := uc.userRepo.GetByID(ctx, m.UserID())
		if err != nil {
			return nil, 0, err
		}
		members = append(members, Member{Membership: m, User: user})
	}
	return members, total, nil
}
