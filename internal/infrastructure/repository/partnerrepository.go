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

type PartnerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPartnerRepository(database *gorm.DB, logger logger.Interface) identity.PartnerRepository {
	return &PartnerRepositoryImpl{db: database, logger: logger}
}

func (r *PartnerRepositoryImpl) Create(ctx context.Context, partner *identity.Partner) error {
	model := r.toModel(partner)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrPartnerSlugExists
		}
		r.logger.Errorw("failed to create partner", "error", err, "name", partner.Name())
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return partner.SetID(model.ID)
}

func (r *PartnerRepositoryImpl) GetByID(ctx context.Context, id uint) (*identity.Partner, error) {
	var model models.PartnerModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PartnerRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*identity.Partner, error) {
	return r.getByColumn(ctx, "slug", slug)
}

func (r *PartnerRepositoryImpl) GetByReferralCode(ctx context.Context, code string) (*identity.Partner, error) {
	return r.getByColumn(ctx, "referral_code", code)
}

func (r *PartnerRepositoryImpl) getByColumn(ctx context.Context, column, value string) (*identity.Partner, error) {
	var model models.PartnerModel
	err := db.GetTxFromContext(ctx, r.db).Where(column+" = ?", value).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to get partner by %s: %w", column, err)
	}
	return r.toEntity(&model)
}

func (r *PartnerRepositoryImpl) Update(ctx context.Context, partner *identity.Partner) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PartnerModel{}).
		Where("id = ?", partner.ID()).
		Updates(map[string]interface{}{
			"name":            partner.Name(),
			"slug":            partner.Slug(),
			"referral_code":   partner.ReferralCode(),
			"commission_rate": partner.CommissionRate(),
			"status":          string(partner.Status()),
			"updated_at":      partner.UpdatedAt(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update partner", "error", err, "partner_id", partner.ID())
		return fmt.Errorf("failed to update partner: %w", err)
	}
	return nil
}

func (r *PartnerRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PartnerModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count partners: %w", err)
	}
	return count > 0, nil
}

func (r *PartnerRepositoryImpl) toModel(partner *identity.Partner) *models.PartnerModel {
	return &models.PartnerModel{
		SID:            partner.SID(),
		Name:           partner.Name(),
		Slug:           partner.Slug(),
		ReferralCode:   partner.ReferralCode(),
		CommissionRate: partner.CommissionRate(),
		Status:         string(partner.Status()),
		CreatedAt:      partner.CreatedAt(),
		UpdatedAt:      partner.UpdatedAt(),
	}
}

func (r *PartnerRepositoryImpl) toEntity(model *models.PartnerModel) (*identity.Partner, error) {
	return identity.ReconstructPartner(
		model.ID,
		model.SID,
		model.Name,
		model.Slug,
		model.ReferralCode,
		model.CommissionRate,
		identity.PartnerStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
