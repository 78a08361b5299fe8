package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/config"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/database"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/migration"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Run, roll back, and inspect versioned database migrations, and apply seed data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newUpCommand())
	cmd.AddCommand(newDownCommand())
	cmd.AddCommand(newForceCommand())
	cmd.AddCommand(newSeedCommand())

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptsPath, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			strategy := migration.NewGolangMigrateStrategy(scriptsPath)
			if err := migration.NewManagerWithStrategy(strategy).Migrate(database.Get()); err != nil {
				return fmt.Errorf("migration up failed: %w", err)
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func newDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptsPath, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			strategy, ok := migration.NewGolangMigrateStrategy(scriptsPath).(*migration.GolangMigrateStrategy)
			if !ok {
				return fmt.Errorf("strategy does not support rollback")
			}
			if err := strategy.MigrateDown(database.Get(), steps); err != nil {
				return fmt.Errorf("migration down failed: %w", err)
			}
			fmt.Printf("rolled back %d migration(s)\n", steps)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	return cmd
}

func newForceCommand() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version and clear the dirty flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version < 0 {
				return fmt.Errorf("version must be non-negative")
			}
			scriptsPath, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			strategy, ok := migration.NewGolangMigrateStrategy(scriptsPath).(*migration.GolangMigrateStrategy)
			if !ok {
				return fmt.Errorf("strategy does not support forcing versions")
			}
			if err := strategy.Force(database.Get(), version); err != nil {
				return fmt.Errorf("force version failed: %w", err)
			}
			fmt.Printf("migration version forced to %d\n", version)
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "Version to force")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Apply seed data (permission catalog, system roles, default plans)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := initEnv(); err != nil {
				return err
			}
			defer database.Close()

			cfg := config.Get()
			seeder := migration.NewSeeder(cfg.Database.Driver)
			if err := seeder.Seed(database.Get()); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Println("seed data applied")
			return nil
		},
	}
}

// initEnv loads configuration, initializes the logger and database
// connection, and returns the absolute migration scripts path.
func initEnv() (string, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return "", fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return "", fmt.Errorf("failed to resolve scripts path: %w", err)
	}
	return scriptsPath, nil
}
