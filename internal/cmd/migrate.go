package cmd

import (
	"fmt"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/spf13/cobra"
)

var dropFirst bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long: `Creates all storefront tables (customers, tokens, products,
categories, carts, orders, shipments and the status-log tables).

Safe to run repeatedly: every statement is CREATE TABLE IF NOT EXISTS.`,
	RunE: migrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop existing tables before creating")
}

func migrate(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up database schema...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if dropFirst {
		fmt.Println("🗑️  Dropping existing tables...")
		if err := db.DropSchema(); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	fmt.Println("📋 Creating tables...")
	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to setup schema: %w", err)
	}

	fmt.Println("✅ Schema setup complete!")
	return nil
}
