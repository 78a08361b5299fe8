package usecases

import (
	"context"
	"errors"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type AuthorizeActionCommand struct {
	UserID         uint
	TenantID       uint
	PermissionCode string
	// AnyOf, when set, authorizes if at least one code is granted and
	// PermissionCode is ignored.
	AnyOf []string
}

type AuthorizeActionUseCase struct {
	resolvePrincipal     *ResolvePrincipalUseCase
	effectivePermissions *EffectivePermissionsUseCase
	logger               logger.Interface
}

func NewAuthorizeActionUseCase(
	resolvePrincipal *ResolvePrincipalUseCase,
	effectivePermissions *EffectivePermissionsUseCase,
	logger logger.Interface,
) *AuthorizeActionUseCase {
	return &AuthorizeActionUseCase{
		resolvePrincipal:     resolvePrincipal,
		effectivePermissions: effectivePermissions,
		logger:               logger,
	}
}

// Execute runs the full gate: resolve the principal, resolve the effective
// set, then decide. Denial is a Decision, not an error; errors mean the
// decision could not be computed at all.
func (uc *AuthorizeActionUseCase) Execute(ctx context.Context, cmd AuthorizeActionCommand) (accesscontrol.Decision, error) {
	principal, err := uc.resolvePrincipal.Execute(ctx, ResolvePrincipalCommand{
		UserID:   cmd.UserID,
		TenantID: cmd.TenantID,
	})
	if err != nil {
		if errors.Is(err, identity.ErrNotTenantMember) || errors.Is(err, identity.ErrUserNotFound) {
			return accesscontrol.Deny(accesscontrol.DenyNotTenantMember, ""), nil
		}
		return accesscontrol.Decision{}, err
	}

	perms, err := uc.effectivePermissions.Execute(ctx, principal)
	if err != nil {
		return accesscontrol.Decision{}, err
	}

	var decision accesscontrol.Decision
	if len(cmd.AnyOf) > 0 {
		decision = accesscontrol.AuthorizeAny(perms, cmd.AnyOf...)
	} else {
		decision = accesscontrol.Authorize(perms, cmd.PermissionCode)
	}

	if !decision.Allowed() {
		uc.logger.Infow("authorization denied",
			"user_id", cmd.UserID,
			"tenant_id", cmd.TenantID,
			"reason", string(decision.Reason()),
			"detail", decision.Detail())
	}
	return decision, nil
}
