package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type SubscriptionUsageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionUsageRepository(database *gorm.DB, logger logger.Interface) subscription.UsageRepository {
	return &SubscriptionUsageRepositoryImpl{db: database, logger: logger}
}

// CheckAndIncrement consumes one unit with a single conditional UPDATE so
// concurrent consumers can never push the count past the limit. The ledger
// row is created lazily; OnConflict DoNothing makes the first-use race safe.
func (r *SubscriptionUsageRepositoryImpl) CheckAndIncrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart, periodEnd time.Time, limit int64) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	row := &models.SubscriptionUsageModel{
		SubscriptionID: subscriptionID,
		FeatureCode:    featureCode,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
	}
	err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, fmt.Errorf("failed to open usage row: %w", err)
	}

	query := conn.Model(&models.SubscriptionUsageModel{}).
		Where("subscription_id = ? AND feature_code = ? AND period_start = ?",
			subscriptionID, featureCode, periodStart)
	if limit > 0 {
		query = query.Where("usage_count < ?", limit)
	}
	result := query.Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to increment usage",
			"error", result.Error,
			"subscription_id", subscriptionID,
			"feature_code", featureCode)
		return 0, fmt.Errorf("failed to increment usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, subscription.ErrQuotaExceeded
	}

	var count int64
	err = conn.Model(&models.SubscriptionUsageModel{}).
		Where("subscription_id = ? AND feature_code = ? AND period_start = ?",
			subscriptionID, featureCode, periodStart).
		Pluck("usage_count", &count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read usage count: %w", err)
	}
	return count, nil
}

// Decrement releases one unit, flooring at zero.
func (r *SubscriptionUsageRepositoryImpl) Decrement(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionUsageModel{}).
		Where("subscription_id = ? AND feature_code = ? AND period_start = ? AND usage_count > 0",
			subscriptionID, featureCode, periodStart).
		Update("usage_count", gorm.Expr("usage_count - 1")).Error
	if err != nil {
		return fmt.Errorf("failed to decrement usage: %w", err)
	}
	return nil
}

func (r *SubscriptionUsageRepositoryImpl) Get(ctx context.Context, subscriptionID uint, featureCode string, periodStart time.Time) (*subscription.SubscriptionUsage, error) {
	var model models.SubscriptionUsageModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND feature_code = ? AND period_start = ?",
			subscriptionID, featureCode, periodStart).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return r.toEntity(&model), nil
}

func (r *SubscriptionUsageRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint, periodStart time.Time) ([]*subscription.SubscriptionUsage, error) {
	var rows []*models.SubscriptionUsageModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND period_start = ?", subscriptionID, periodStart).
		Order("feature_code").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	usages := make([]*subscription.SubscriptionUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, r.toEntity(row))
	}
	return usages, nil
}

func (r *SubscriptionUsageRepositoryImpl) toEntity(model *models.SubscriptionUsageModel) *subscription.SubscriptionUsage {
	return subscription.ReconstructSubscriptionUsage(
		model.ID,
		model.SubscriptionID,
		model.FeatureCode,
		model.PeriodStart,
		model.PeriodEnd,
		model.UsageCount,
		model.LastResetAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
