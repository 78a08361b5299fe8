package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(database *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{db: database, logger: logger}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.toModel(sub)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "tenant_id", sub.TenantID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub.SetID(model.ID)
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by sid: %w", err)
	}
	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetCurrentByTenantID(ctx context.Context, tenantID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get current subscription: %w", err)
	}
	return r.toEntity(&model)
}

// Update writes the aggregate guarded by its version column. The in-memory
// version was already advanced by the mutation, so the guard matches any
// stored version strictly below it.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version < ?", sub.ID(), sub.Version()).
		Updates(map[string]interface{}{
			"plan_id":              sub.PlanID(),
			"status":               sub.Status().String(),
			"billing_cycle":        sub.BillingCycle().String(),
			"current_period_start": sub.CurrentPeriodStart(),
			"current_period_end":   sub.CurrentPeriodEnd(),
			"trial_ends_at":        sub.TrialEndsAt(),
			"cancelled_at":         sub.CancelledAt(),
			"cancel_reason":        sub.CancelReason(),
			"version":              sub.Version(),
			"updated_at":           sub.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", status).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return r.toEntities(rows)
}

func (r *SubscriptionRepositoryImpl) ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND trial_ends_at >= ? AND trial_ends_at < ?", vo.StatusTrial.String(), from, to).
		Order("trial_ends_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ending trials: %w", err)
	}
	return r.toEntities(rows)
}

func (r *SubscriptionRepositoryImpl) toEntities(rows []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0, len(rows))
	for _, row := range rows {
		sub, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *SubscriptionRepositoryImpl) toModel(sub *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		SID:                sub.SID(),
		TenantID:           sub.TenantID(),
		PlanID:             sub.PlanID(),
		PartnerID:          sub.PartnerID(),
		Status:             sub.Status().String(),
		BillingCycle:       sub.BillingCycle().String(),
		CurrentPeriodStart: sub.CurrentPeriodStart(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd(),
		TrialEndsAt:        sub.TrialEndsAt(),
		CancelledAt:        sub.CancelledAt(),
		CancelReason:       sub.CancelReason(),
		Version:            sub.Version(),
		CreatedAt:          sub.CreatedAt(),
		UpdatedAt:          sub.UpdatedAt(),
	}
}

func (r *SubscriptionRepositoryImpl) toEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	return subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:                 model.ID,
		SID:                model.SID,
		TenantID:           model.TenantID,
		PlanID:             model.PlanID,
		PartnerID:          model.PartnerID,
		Status:             vo.SubscriptionStatus(model.Status),
		BillingCycle:       vo.BillingCycle(model.BillingCycle),
		CurrentPeriodStart: model.CurrentPeriodStart,
		CurrentPeriodEnd:   model.CurrentPeriodEnd,
		TrialEndsAt:        model.TrialEndsAt,
		CancelledAt:        model.CancelledAt,
		CancelReason:       model.CancelReason,
		Version:            model.Version,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
}
