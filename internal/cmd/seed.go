package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/matthieukhl/storefront/internal/auth"
	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample catalog data",
	Long: `Creates a demo customer (demo@storefront.local / demo-password)
plus sample categories and products for local development.`,
	RunE: seed,
}

var seedFresh bool

func init() {
	seedCmd.Flags().BoolVar(&seedFresh, "fresh", false, "delete all existing data before seeding")
	rootCmd.AddCommand(seedCmd)
}

func seed(cmd *cobra.Command, args []string) error {
	fmt.Println("🌱 Seeding sample data...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if seedFresh {
		fmt.Println("   🧹 Clearing existing data...")
		if err := db.CleanupData(); err != nil {
			return fmt.Errorf("failed to clean up data: %w", err)
		}
	}

	fmt.Println("   👥 Creating demo customer...")
	ownerUUID, err := seedCustomer(ctx, db)
	if err != nil {
		return err
	}

	fmt.Println("   🏷️  Creating categories...")
	if err := seedCategories(db); err != nil {
		return err
	}

	fmt.Println("   📦 Creating products...")
	if err := seedProducts(ctx, db, ownerUUID); err != nil {
		return err
	}

	fmt.Println("✅ Seed complete!")
	return nil
}

func seedCustomer(ctx context.Context, db *database.DB) (string, error) {
	hashed, err := auth.HashPassword("demo-password")
	if err != nil {
		return "", fmt.Errorf("failed to hash demo password: %w", err)
	}

	customer := &models.Customer{
		UUID:     uuid.NewString(),
		UserName: "demo",
		Email:    "demo@storefront.local",
		Password: hashed,
		FullName: "Demo Customer",
		Phone:    "+620000000000",
	}

	customers := store.NewCustomerStore(db)
	if err := customers.Create(ctx, customer); err != nil {
		return "", fmt.Errorf("failed to create demo customer: %w", err)
	}

	return customer.UUID, nil
}

func seedCategories(db *database.DB) error {
	for _, name := range []string{"Electronics", "Books", "Clothing", "Home"} {
		if _, err := db.Exec(
			"INSERT IGNORE INTO categories (name) VALUES (?)", name,
		); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}

	return nil
}

func seedProducts(ctx context.Context, db *database.DB, ownerUUID string) error {
	samples := []struct {
		name        string
		description string
		price       string
		quantity    int
	}{
		{"Mechanical Keyboard", "87-key hot-swappable board", "89.90", 25},
		{"USB-C Dock", "Dual display, 100W passthrough", "54.00", 40},
		{"Paperback Novel", "Bestselling mystery", "10.00", 120},
		{"Ceramic Mug", "350ml, dishwasher safe", "5.50", 200},
	}

	products := store.NewProductStore(db)
	for _, sample := range samples {
		price, err := decimal.NewFromString(sample.price)
		if err != nil {
			return fmt.Errorf("bad sample price %q: %w", sample.price, err)
		}

		if _, err := products.Create(ctx, &models.Product{
			Name:        sample.name,
			Description: sample.description,
			Price:       price,
			Quantity:    sample.quantity,
			OwnerUUID:   ownerUUID,
		}); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", sample.name, err)
		}
	}

	return nil
}
