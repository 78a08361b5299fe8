package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMembershipRepository(database *gorm.DB, logger logger.Interface) identity.MembershipRepository {
	return &MembershipRepositoryImpl{db: database, logger: logger}
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, membership *identity.Membership) error {
	model := r.toModel(membership)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrMembershipExists
		}
		r.logger.Errorw("failed to create membership",
			"error", err,
			"user_id", membership.UserID(),
			"tenant_id", membership.TenantID())
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return membership.SetID(model.ID)
}

func (r *MembershipRepositoryImpl) GetByUserAndTenant(ctx context.Context, userID, tenantID uint) (*identity.Membership, error) {
	var model models.MembershipModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return r.toEntity(&model)
}

func (r *MembershipRepositoryImpl) GetByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*identity.Membership, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []*models.MembershipModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list memberships: %w", err)
	}

	memberships := make([]*identity.Membership, 0, len(rows))
	for _, row := range rows {
		m, err := r.toEntity(row)
		if err != nil {
			return nil, 0, err
		}
		memberships = append(memberships, m)
	}
	return memberships, total, nil
}

func (r *MembershipRepositoryImpl) Update(ctx context.Context, membership *identity.Membership) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("id = ?", membership.ID()).
		Updates(map[string]interface{}{
			"legacy_role": membership.LegacyRole().String(),
			"role_id":     membership.RoleID(),
			"is_owner":    membership.IsOwner(),
			"updated_at":  membership.UpdatedAt(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update membership", "error", err, "membership_id", membership.ID())
		return fmt.Errorf("failed to update membership: %w", err)
	}
	return nil
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Delete(&models.MembershipModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

func (r *MembershipRepositoryImpl) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}

func (r *MembershipRepositoryImpl) ClearRoleAssignments(ctx context.Context, tenantID, roleID uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("tenant_id = ? AND role_id = ?", tenantID, roleID).
		Updates(map[string]interface{}{
			"role_id":    nil,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to clear role assignments",
			"error", err,
			"tenant_id", tenantID,
			"role_id", roleID)
		return fmt.Errorf("failed to clear role assignments: %w", err)
	}
	return nil
}

func (r *MembershipRepositoryImpl) toModel(membership *identity.Membership) *models.MembershipModel {
	return &models.MembershipModel{
		UserID:     membership.UserID(),
		TenantID:   membership.TenantID(),
		LegacyRole: membership.LegacyRole().String(),
		RoleID:     membership.RoleID(),
		IsOwner:    membership.IsOwner(),
		CreatedAt:  membership.CreatedAt(),
		UpdatedAt:  membership.UpdatedAt(),
	}
}

func (r *MembershipRepositoryImpl) toEntity(model *models.MembershipModel) (*identity.Membership, error) {
	return identity.ReconstructMembership(
		model.ID,
		model.UserID,
		model.TenantID,
		identity.LegacyRole(model.LegacyRole),
		model.RoleID,
		model.IsOwner,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
