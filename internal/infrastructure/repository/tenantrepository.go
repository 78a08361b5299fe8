package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type TenantRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTenantRepository(database *gorm.DB, logger logger.Interface) identity.TenantRepository {
	return &TenantRepositoryImpl{db: database, logger: logger}
}

func (r *TenantRepositoryImpl) Create(ctx context.Context, tenant *identity.Tenant) error {
	model := r.toModel(tenant)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create tenant", "error", err, "name", tenant.Name())
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return tenant.SetID(model.ID)
}

func (r *TenantRepositoryImpl) GetByID(ctx context.Context, id uint) (*identity.Tenant, error) {
	var model models.TenantModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return r.toEntity(&model)
}

func (r *TenantRepositoryImpl) GetBySID(ctx context.Context, sid string) (*identity.Tenant, error) {
	var model models.TenantModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by sid: %w", err)
	}
	return r.toEntity(&model)
}

func (r *TenantRepositoryImpl) Update(ctx context.Context, tenant *identity.Tenant) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TenantModel{}).
		Where("id = ?", tenant.ID()).
		Updates(map[string]interface{}{
			"name":                    tenant.Name(),
			"partner_id":              tenant.PartnerID(),
			"status":                  string(tenant.Status()),
			"environment":             tenant.Environment(),
			"current_subscription_id": tenant.CurrentSubscriptionID(),
			"updated_at":              tenant.UpdatedAt(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update tenant", "error", err, "tenant_id", tenant.ID())
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	return nil
}

func (r *TenantRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Delete(&models.TenantModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (r *TenantRepositoryImpl) List(ctx context.Context, filter identity.TenantFilter) ([]*identity.Tenant, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{})
	if filter.PartnerID != nil {
		query = query.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []*models.TenantModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	tenants := make([]*identity.Tenant, 0, len(rows))
	for _, row := range rows {
		tenant, err := r.toEntity(row)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, total, nil
}

func (r *TenantRepositoryImpl) toModel(tenant *identity.Tenant) *models.TenantModel {
	return &models.TenantModel{
		SID:                   tenant.SID(),
		Name:                  tenant.Name(),
		PartnerID:             tenant.PartnerID(),
		Status:                string(tenant.Status()),
		Environment:           tenant.Environment(),
		CurrentSubscriptionID: tenant.CurrentSubscriptionID(),
		CreatedAt:             tenant.CreatedAt(),
		UpdatedAt:             tenant.UpdatedAt(),
	}
}

func (r *TenantRepositoryImpl) toEntity(model *models.TenantModel) (*identity.Tenant, error) {
	return identity.ReconstructTenant(
		model.ID,
		model.SID,
		model.Name,
		model.PartnerID,
		identity.TenantStatus(model.Status),
		model.Environment,
		model.CurrentSubscriptionID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
