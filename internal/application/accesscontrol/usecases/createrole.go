package usecases

import (
	"context"
	"fmt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type CreateRoleCommand struct {
	TenantID    uint
	Name        string
	Description string
	Permissions []string
}

type CreateRoleUseCase struct {
	roleRepo       accesscontrol.RoleRepository
	permissionRepo accesscontrol.PermissionRepository
	logger         logger.Interface
}

func NewCreateRoleUseCase(
	roleRepo accesscontrol.RoleRepository,
	permissionRepo accesscontrol.PermissionRepository,
	logger logger.Interface,
) *CreateRoleUseCase {
	return &CreateRoleUseCase{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		logger:         logger,
	}
}

func (uc *CreateRoleUseCase) Execute(ctx context.Context, cmd CreateRoleCommand) (*accesscontrol.Role, error) {
	if err := uc.validatePermissionCodes(ctx, cmd.Permissions); err != nil {
		return nil, err
	}

	role, err := accesscontrol.NewTenantRole(cmd.TenantID, cmd.Name, cmd.Description, cmd.Permissions)
	if err != nil {
		return nil, err
	}

	if err := uc.roleRepo.Create(ctx, role); err != nil {
		uc.logger.Errorw("failed to create role", "error", err, "tenant_id", cmd.TenantID, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	uc.logger.Infow("role created", "tenant_id", cmd.TenantID, "role_id", role.ID(), "name", role.Name())
	return role, nil
}

func (uc *CreateRoleUseCase) validatePermissionCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	catalog, err := uc.permissionRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list permission catalog: %w", err)
	}
	known := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		known[p.Code()] = struct{}{}
	}
	for _, code := range codes {
		if _, ok := known[code]; !ok {
			return fmt.Errorf("%w: %s", accesscontrol.ErrUnknownPermission, code)
		}
	}
	return nil
}
