package cmd

import (
	"fmt"
	"strings"

	"steam-ledger/core/config"
	"steam-ledger/core/database"
	"steam-ledger/core/logger"
	"steam-ledger/feature/games/models"
	"steam-ledger/feature/games/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCheck bool

// migrateCmd creates or updates the tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Long: `Runs the schema migration. With --check nothing is changed and the command fails
when a table or one of its columns is missing.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateCheck, "check", false, "Only report missing tables")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	if migrateCheck {
		missing := database.MissingTables(db, models.All()...)
		if len(missing) > 0 {
			return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
		}
		columns, err := database.MissingColumns(db, models.All()...)
		if err != nil {
			return err
		}
		if len(columns) > 0 {
			for table, cols := range columns {
				l.Warn("Table is missing columns", zap.String("table", table), zap.Strings("columns", cols))
			}
			return fmt.Errorf("%d tables are missing columns", len(columns))
		}
		l.Info("Schema is up to date")
		return nil
	}

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	l.Info("Schema migrated", zap.Int("tables", len(models.All())))
	return nil
}
