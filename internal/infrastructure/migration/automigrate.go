package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/persistence/models"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

// AutoMigrateModels returns every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PartnerModel{},
		&models.TenantModel{},
		&models.MembershipModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.PlanModel{},
		&models.PlanFeatureModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionUsageModel{},
		&models.InvoiceModel{},
		&models.InvoiceSequenceModel{},
		&models.PaymentModel{},
	}
}

// GormAutoMigrateStrategy migrates the schema from the model structs.
// Development only; production uses versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}
	s.logger.Infow("running gorm automigrate", "models", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
