package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

//go:embed seeds/*.sql
var seedFS embed.FS

// Seeder applies the embedded goose seed scripts: permission catalog,
// system roles, default plans. Scripts are idempotent through goose's
// version table.
type Seeder struct {
	dialect string
	logger  logger.Interface
}

func NewSeeder(dialect string) *Seeder {
	if dialect == "" {
		dialect = "mysql"
	}
	return &Seeder{
		dialect: dialect,
		logger:  logger.NewLogger().With("component", "migration.seeder"),
	}
}

func (s *Seeder) Seed(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(seedFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	before, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get seed version: %w", err)
	}

	if err := goose.Up(sqlDB, "seeds"); err != nil {
		return fmt.Errorf("failed to apply seeds: %w", err)
	}

	after, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get seed version: %w", err)
	}

	s.logger.Infow("seed scripts applied", "from_version", before, "to_version", after)
	return nil
}
