package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(database *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{db: database, logger: logger}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := r.toModel(plan)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "code", plan.Code())
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return plan.SetID(model.ID)
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	var model models.PlanModel
	err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan by code: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	limits, err := json.Marshal(plan.Limits())
	if err != nil {
		return fmt.Errorf("failed to encode plan limits: %w", err)
	}
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("id = ?", plan.ID()).
		Updates(map[string]interface{}{
			"name":          plan.Name(),
			"description":   plan.Description(),
			"price_monthly": plan.PriceMonthly(),
			"price_yearly":  plan.PriceYearly(),
			"trial_days":    plan.TrialDays(),
			"is_active":     plan.IsActive(),
			"is_public":     plan.IsPublic(),
			"limits":        datatypes.JSON(limits),
			"updated_at":    plan.UpdatedAt(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update plan", "error", err, "plan_id", plan.ID())
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context, publicOnly bool) ([]*subscription.Plan, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("is_active = ?", true)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	var rows []*models.PlanModel
	if err := query.Order("price_monthly").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	plans := make([]*subscription.Plan, 0, len(rows))
	for _, row := range rows {
		plan, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) toModel(plan *subscription.Plan) (*models.PlanModel, error) {
	limits, err := json.Marshal(plan.Limits())
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan limits: %w", err)
	}
	return &models.PlanModel{
		SID:          plan.SID(),
		Code:         plan.Code(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		PriceMonthly: plan.PriceMonthly(),
		PriceYearly:  plan.PriceYearly(),
		TrialDays:    plan.TrialDays(),
		IsActive:     plan.IsActive(),
		IsPublic:     plan.IsPublic(),
		Limits:       datatypes.JSON(limits),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}, nil
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*subscription.Plan, error) {
	limits, err := decodeLimits(model.Limits)
	if err != nil {
		return nil, err
	}
	return subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Code,
		model.Name,
		model.Description,
		model.PriceMonthly,
		model.PriceYearly,
		model.TrialDays,
		model.IsActive,
		model.IsPublic,
		limits,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func decodeLimits(raw datatypes.JSON) (vo.PlanLimits, error) {
	if len(raw) == 0 {
		return vo.PlanLimits{}, nil
	}
	var limits map[string]int64
	if err := json.Unmarshal(raw, &limits); err != nil {
		return nil, fmt.Errorf("failed to decode limits: %w", err)
	}
	return vo.NewPlanLimits(limits), nil
}

type PlanFeatureRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanFeatureRepository(database *gorm.DB, logger logger.Interface) subscription.PlanFeatureRepository {
	return &PlanFeatureRepositoryImpl{db: database, logger: logger}
}

func (r *PlanFeatureRepositoryImpl) Create(ctx context.Context, feature *subscription.PlanFeature) error {
	model, err := r.toModel(feature)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan feature",
			"error", err,
			"plan_id", feature.PlanID(),
			"feature_code", feature.FeatureCode())
		return fmt.Errorf("failed to create plan feature: %w", err)
	}
	return feature.SetID(model.ID)
}

// GetByPlanAndCode returns nil, nil when the plan has no row for the code;
// the quota service falls back to the plan-level limit.
func (r *PlanFeatureRepositoryImpl) GetByPlanAndCode(ctx context.Context, planID uint, featureCode string) (*subscription.PlanFeature, error) {
	var model models.PlanFeatureModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ? AND feature_code = ?", planID, featureCode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan feature: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanFeatureRepositoryImpl) ListByPlanID(ctx context.Context, planID uint) ([]*subscription.PlanFeature, error) {
	var rows []*models.PlanFeatureModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Order("feature_code").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plan features: %w", err)
	}
	features := make([]*subscription.PlanFeature, 0, len(rows))
	for _, row := range rows {
		f, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

func (r *PlanFeatureRepositoryImpl) Update(ctx context.Context, feature *subscription.PlanFeature) error {
	limits, err := json.Marshal(feature.Limits())
	if err != nil {
		return fmt.Errorf("failed to encode feature limits: %w", err)
	}
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanFeatureModel{}).
		Where("id = ?", feature.ID()).
		Updates(map[string]interface{}{
			"enabled":    feature.Enabled(),
			"limits":     datatypes.JSON(limits),
			"updated_at": feature.UpdatedAt(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update plan feature: %w", err)
	}
	return nil
}

func (r *PlanFeatureRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Delete(&models.PlanFeatureModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete plan feature: %w", err)
	}
	return nil
}

func (r *PlanFeatureRepositoryImpl) toModel(feature *subscription.PlanFeature) (*models.PlanFeatureModel, error) {
	limits, err := json.Marshal(feature.Limits())
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature limits: %w", err)
	}
	return &models.PlanFeatureModel{
		PlanID:      feature.PlanID(),
		FeatureCode: feature.FeatureCode(),
		Enabled:     feature.Enabled(),
		Limits:      datatypes.JSON(limits),
		CreatedAt:   feature.CreatedAt(),
		UpdatedAt:   feature.UpdatedAt(),
	}, nil
}

func (r *PlanFeatureRepositoryImpl) toEntity(model *models.PlanFeatureModel) (*subscription.PlanFeature, error) {
	limits, err := decodeLimits(model.Limits)
	if err != nil {
		return nil, err
	}
	return subscription.ReconstructPlanFeature(
		model.ID,
		model.PlanID,
		model.FeatureCode,
		model.Enabled,
		limits,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
