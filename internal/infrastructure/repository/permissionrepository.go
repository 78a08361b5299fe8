package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPermissionRepository(database *gorm.DB, logger logger.Interface) accesscontrol.PermissionRepository {
	return &PermissionRepositoryImpl{db: database, logger: logger}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, permission *accesscontrol.Permission) error {
	model := &models.PermissionModel{
		Code:      permission.Code(),
		Name:      permission.Name(),
		Category:  permission.Category(),
		CreatedAt: permission.CreatedAt(),
		UpdatedAt: permission.UpdatedAt(),
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create permission", "error", err, "code", permission.Code())
		return fmt.Errorf("failed to create permission: %w", err)
	}
	return permission.SetID(model.ID)
}

func (r *PermissionRepositoryImpl) GetByCode(ctx context.Context, code string) (*accesscontrol.Permission, error) {
	var model models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accesscontrol.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PermissionRepositoryImpl) ListAll(ctx context.Context) ([]*accesscontrol.Permission, error) {
	var rows []*models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).Order("category, code").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return r.toEntities(rows)
}

func (r *PermissionRepositoryImpl) ListByCategory(ctx context.Context, category string) ([]*accesscontrol.Permission, error) {
	var rows []*models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ?", category).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions by category: %w", err)
	}
	return r.toEntities(rows)
}

func (r *PermissionRepositoryImpl) toEntity(model *models.PermissionModel) (*accesscontrol.Permission, error) {
	return accesscontrol.ReconstructPermission(
		model.ID,
		model.Code,
		model.Name,
		model.Category,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *PermissionRepositoryImpl) toEntities(rows []*models.PermissionModel) ([]*accesscontrol.Permission, error) {
	permissions := make([]*accesscontrol.Permission, 0, len(rows))
	for _, row := range rows {
		p, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, nil
}
