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

type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(database *gorm.DB, logger logger.Interface) identity.UserRepository {
	return &UserRepositoryImpl{db: database, logger: logger}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *identity.User) error {
	model := r.toModel(user)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrEmailExists
		}
		r.logger.Errorw("failed to create user", "error", err, "email", user.Email())
		return fmt.Errorf("failed to create user: %w", err)
	}
	return user.SetID(model.ID)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*identity.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *identity.User) error {
	model := r.toModel(user)
	model.ID = user.ID()
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", user.ID()).
		Updates(map[string]interface{}{
			"email":          model.Email,
			"password_hash":  model.PasswordHash,
			"name":           model.Name,
			"is_super_admin": model.IsSuperAdmin,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update user", "error", err, "user_id", user.ID())
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) toModel(user *identity.User) *models.UserModel {
	return &models.UserModel{
		SID:          user.SID(),
		Email:        user.Email(),
		PasswordHash: user.PasswordHash(),
		Name:         user.Name(),
		IsSuperAdmin: user.IsSuperAdmin(),
		Status:       string(user.Status()),
		CreatedAt:    user.CreatedAt(),
		UpdatedAt:    user.UpdatedAt(),
	}
}

func (r *UserRepositoryImpl) toEntity(model *models.UserModel) (*identity.User, error) {
	return identity.ReconstructUser(
		model.ID,
		model.SID,
		model.Email,
		model.PasswordHash,
		model.Name,
		model.IsSuperAdmin,
		identity.UserStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
