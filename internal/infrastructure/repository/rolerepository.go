package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type RoleRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewRoleRepository(database *gorm.DB, logger logger.Interface) accesscontrol.RoleRepository {
	return &RoleRepositoryImpl{db: database, logger: logger}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *accesscontrol.Role) error {
	model, err := r.toModel(role)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return accesscontrol.ErrRoleNameExists
		}
		r.logger.Errorw("failed to create role", "error", err, "name", role.Name())
		return fmt.Errorf("failed to create role: %w", err)
	}
	return role.SetID(model.ID)
}

// GetByID returns nil, nil when the role does not exist so callers fail
// closed on dangling references.
func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*accesscontrol.Role, error) {
	var model models.RoleModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r.toEntity(&model)
}

func (r *RoleRepositoryImpl) GetSystemRoleByCode(ctx context.Context, code string) (*accesscontrol.Role, error) {
	var model models.RoleModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("code = ? AND is_system = ? AND tenant_id IS NULL", code, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get system role: %w", err)
	}
	return r.toEntity(&model)
}

func (r *RoleRepositoryImpl) ListByTenant(ctx context.Context, tenantID uint) ([]*accesscontrol.Role, error) {
	var rows []*models.RoleModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant roles: %w", err)
	}
	return r.toEntities(rows)
}

func (r *RoleRepositoryImpl) ListSystemRoles(ctx context.Context) ([]*accesscontrol.Role, error) {
	var rows []*models.RoleModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_system = ? AND tenant_id IS NULL", true).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list system roles: %w", err)
	}
	return r.toEntities(rows)
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *accesscontrol.Role) error {
	permissions, err := json.Marshal(role.Permissions())
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.RoleModel{}).
		Where("id = ?", role.ID()).
		Updates(map[string]interface{}{
			"name":        role.Name(),
			"description": role.Description(),
			"permissions": datatypes.JSON(permissions),
			"updated_at":  role.UpdatedAt(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update role", "error", err, "role_id", role.ID())
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Delete(&models.RoleModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (r *RoleRepositoryImpl) ExistsByName(ctx context.Context, tenantID uint, name string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RoleModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count roles: %w", err)
	}
	return count > 0, nil
}

func (r *RoleRepositoryImpl) toModel(role *accesscontrol.Role) (*models.RoleModel, error) {
	permissions, err := json.Marshal(role.Permissions())
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}
	return &models.RoleModel{
		SID:         role.SID(),
		TenantID:    role.TenantID(),
		Code:        role.Code(),
		Name:        role.Name(),
		Description: role.Description(),
		Permissions: datatypes.JSON(permissions),
		IsSystem:    role.IsSystem(),
		IsDefault:   role.IsDefault(),
		CreatedAt:   role.CreatedAt(),
		UpdatedAt:   role.UpdatedAt(),
	}, nil
}

func (r *RoleRepositoryImpl) toEntity(model *models.RoleModel) (*accesscontrol.Role, error) {
	var permissions []string
	if len(model.Permissions) > 0 {
		if err := json.Unmarshal(model.Permissions, &permissions); err != nil {
			return nil, fmt.Errorf("failed to decode role permissions: %w", err)
		}
	}
	return accesscontrol.ReconstructRole(
		model.ID,
		model.SID,
		model.TenantID,
		model.Code,
		model.Name,
		model.Description,
		permissions,
		model.IsSystem,
		model.IsDefault,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *RoleRepositoryImpl) toEntities(rows []*models.RoleModel) ([]*accesscontrol.Role, error) {
	roles := make([]*accesscontrol.Role, 0, len(rows))
	for _, row := range rows {
		role, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
