package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type EffectivePermissionsUseCase struct {
	roleRepo accesscontrol.RoleRepository
	cache    PermissionCache
	logger   logger.Interface
}

func NewEffectivePermissionsUseCase(
	roleRepo accesscontrol.RoleRepository,
	logger logger.Interface,
) *EffectivePermissionsUseCase {
	return &EffectivePermissionsUseCase{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// SetCache enables read-through caching of resolved sets (optional).
func (uc *EffectivePermissionsUseCase) SetCache(cache PermissionCache) {
	uc.cache = cache
}

// Execute resolves the effective permission set for a principal. Precedence,
// highest first:
//
//  1. super-admin: universal set
//  2. tenant owner: universal set
//  3. custom role assignment (role_id on the membership)
//  4. legacy role mapped to its system role through the explicit table
//
// A dangling role_id or a role from another tenant resolves to the empty
// set: the assignment is broken, so access fails closed rather than falling
// back to the legacy role.
func (uc *EffectivePermissionsUseCase) Execute(ctx context.Context, principal accesscontrol.Principal) (accesscontrol.PermissionSet, error) {
	if principal.IsSuperAdmin() || principal.IsOwner() {
		return accesscontrol.UniversalPermissionSet(), nil
	}

	if cached := uc.fromCache(ctx, principal); cached != nil {
		return *cached, nil
	}

	perms, err := uc.resolve(ctx, principal)
	if err != nil {
		return accesscontrol.EmptyPermissionSet(), err
	}

	uc.toCache(ctx, principal, perms)
	return perms, nil
}

func (uc *EffectivePermissionsUseCase) resolve(ctx context.Context, principal accesscontrol.Principal) (accesscontrol.PermissionSet, error) {
	if principal.HasCustomRole() {
		role, err := uc.roleRepo.GetByID(ctx, *principal.RoleID())
		if err != nil {
			uc.logger.Errorw("failed to get role", "error", err, "role_id", *principal.RoleID())
			return accesscontrol.EmptyPermissionSet(), fmt.Errorf("failed to get role: %w", err)
		}
		if role == nil {
			uc.logger.Warnw("membership references missing role",
				"user_id", principal.UserID(),
				"tenant_id", principal.TenantID(),
				"role_id", *principal.RoleID())
			return accesscontrol.EmptyPermissionSet(), nil
		}
		if !role.BelongsToTenant(principal.TenantID()) {
			uc.logger.Warnw("membership references role from another tenant",
				"user_id", principal.UserID(),
				"tenant_id", principal.TenantID(),
				"role_id", role.ID())
			return accesscontrol.EmptyPermissionSet(), nil
		}
		return role.PermissionSet(), nil
	}

	code, ok := accesscontrol.SystemRoleCodeFor(principal.LegacyRole())
	if !ok {
		uc.logger.Warnw("membership carries unknown legacy role",
			"user_id", principal.UserID(),
			"tenant_id", principal.TenantID(),
			"legacy_role", principal.LegacyRole().String())
		return accesscontrol.EmptyPermissionSet(), nil
	}

	role, err := uc.roleRepo.GetSystemRoleByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to get system role", "error", err, "code", code)
		return accesscontrol.EmptyPermissionSet(), fmt.Errorf("failed to get system role: %w", err)
	}
	if role == nil {
		uc.logger.Warnw("system role missing from catalog", "code", code)
		return accesscontrol.EmptyPermissionSet(), nil
	}
	return role.PermissionSet(), nil
}

func (uc *EffectivePermissionsUseCase) fromCache(ctx context.Context, principal accesscontrol.Principal) *accesscontrol.PermissionSet {
	if uc.cache == nil {
		return nil
	}
	cached, err := uc.cache.Get(ctx, principal.UserID(), principal.TenantID())
	if err != nil {
		uc.logger.Warnw("permission cache read failed", "error", err)
		return nil
	}
	if cached == nil {
		return nil
	}
	var set accesscontrol.PermissionSet
	if cached.Universal {
		set = accesscontrol.UniversalPermissionSet()
	} else {
		set = accesscontrol.NewPermissionSet(cached.Codes...)
	}
	return &set
}

func (uc *EffectivePermissionsUseCase) toCache(ctx context.Context, principal accesscontrol.Principal, perms accesscontrol.PermissionSet) {
	if uc.cache == nil {
		return
	}
	entry := CachedPermissions{
		Universal: perms.IsUniversal(),
		Codes:     perms.Codes(),
	}
	if err := uc.cache.Set(ctx, principal.UserID(), principal.TenantID(), entry); err != nil {
		uc.logger.Warnw("permission cache write failed", "error", err)
	}
}
