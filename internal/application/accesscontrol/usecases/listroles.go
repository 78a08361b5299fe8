package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type ListRolesUseCase struct {
	roleRepo accesscontrol.RoleRepository
	logger   logger.Interface
}

func NewListRolesUseCase(roleRepo accesscontrol.RoleRepository, logger logger.Interface) *ListRolesUseCase {
	return &ListRolesUseCase{roleRepo: roleRepo, logger: logger}
}

// Execute returns the roles assignable inside a tenant: the shared system
// roles followed by the tenant's own custom roles.
func (uc *ListRolesUseCase) Execute(ctx context.Context, tenantID uint) ([]*accesscontrol.Role, error) {
	system, err := uc.roleRepo.ListSystemRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list system roles: %w", err)
	}
	custom, err := uc.roleRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant roles: %w", err)
	}
	return append(system, custom...), nil
}

type ListPermissionsUseCase struct {
	permissionRepo accesscontrol.PermissionRepository
}

func NewListPermissionsUseCase(permissionRepo accesscontrol.PermissionRepository) *ListPermissionsUseCase {
	return &ListPermissionsUseCase{permissionRepo: permissionRepo}
}

// Execute returns the full permission catalog.
func (uc *ListPermissionsUseCase) Execute(ctx context.Context) ([]*accesscontrol.Permission, error) {
	perms, err := uc.permissionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}
