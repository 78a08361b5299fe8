package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type RegisterTenantCommand struct {
	Email        string
	Password     string
	Name         string
	TenantName   string
	Environment  string
	ReferralCode string
}

type RegisterTenantResult struct {
	User       *identity.User
	Tenant     *identity.Tenant
	Membership *identity.Membership
}

// RegisterTenantUseCase signs up a new account: the user, their tenant, and
// the owner membership are created in one transaction. A referral code
// attributes the tenant to a partner when it resolves; unknown codes are
// ignored rather than failing signup.
type RegisterTenantUseCase struct {
	userRepo       identity.UserRepository
	tenantRepo     identity.TenantRepository
	partnerRepo    identity.PartnerRepository
	membershipRepo identity.MembershipRepository
	txManager      Transactor
	bcryptCost     int
	logger         logger.Interface
}

func NewRegisterTenantUseCase(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	partnerRepo identity.PartnerRepository,
	membershipRepo identity.MembershipRepository,
	txManager Transactor,
	bcryptCost int,
	logger logger.Interface,
) *RegisterTenantUseCase {
	return &RegisterTenantUseCase{
		userRepo:       userRepo,
		tenantRepo:     tenantRepo,
		partnerRepo:    partnerRepo,
		membershipRepo: membershipRepo,
		txManager:      txManager,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func (uc *RegisterTenantUseCase) Execute(ctx context.Context, cmd RegisterTenantCommand) (*RegisterTenantResult, error) {
	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, identity.ErrEmailExists
	}

	user, err := identity.NewUser(cmd.Email, cmd.Password, cmd.Name, uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	partnerID := uc.resolveReferral(ctx, cmd.ReferralCode)

	tenant, err := identity.NewTenant(cmd.TenantName, cmd.Environment, partnerID)
	if err != nil {
		return nil, err
	}

	var membership *identity.Membership
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := uc.tenantRepo.Create(txCtx, tenant); err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}
		membership, err = identity.NewMembership(user.ID(), tenant.ID(), identity.LegacyRoleAdmin, true)
		if err != nil {
			return err
		}
		if err := uc.membershipRepo.Create(txCtx, membership); err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("tenant registered",
		"tenant_id", tenant.ID(),
		"user_id", user.ID(),
		"partner_attributed", partnerID != nil)
	return &RegisterTenantResult{User: user, Tenant: tenant, Membership: membership}, nil
}

func (uc *RegisterTenantUseCase) resolveReferral(ctx context.Context, code string) *uint {
	if code == "" {
		return nil
	}
	partner, err := uc.partnerRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if !errors.Is(err, identity.ErrPartnerNotFound) {
			uc.logger.Warnw("referral lookup failed", "error", err, "code", code)
		}
		return nil
	}
	if !partner.IsActive() {
		return nil
	}
	id := partner.ID()
	return &id
}
