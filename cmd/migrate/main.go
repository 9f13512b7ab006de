// Package main provides the schema migration CLI.
package main

import (
	"fmt"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/database"
	"github.com/snakanz/adviceApp-sub002/pkg/config"
)

var (
	upSteps   int
	downSteps int
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Apply or roll back the database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations from migrations/",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			return database.Migrate(db, migrate.Up, upSteps)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations (one by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if downSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return withDB(func(db *gorm.DB) error {
			return database.Migrate(db, migrate.Down, downSteps)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get database connection: %w", err)
			}
			records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
			if err != nil {
				return fmt.Errorf("failed to read migration records: %w", err)
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		})
	},
}

func init() {
	upCmd.Flags().IntVar(&upSteps, "steps", 0, "maximum number of migrations to apply (0 = all)")
	downCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd)
}

func withDB(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")
	return fn(db)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
