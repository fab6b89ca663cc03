package cmd

import (
	"fmt"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/matthieukhl/storefront/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Storefront server",
	Long: `Start the Storefront server which provides:
- REST API for customers, catalog, carts and checkout
- Bearer-token authentication with logout blacklisting
- Payment-gateway integration for committed orders`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Storefront Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("✅ Database connected successfully")

	provider, err := payment.New(&cfg.Payment)
	if err != nil {
		return fmt.Errorf("failed to create payment provider: %w", err)
	}
	logger.Info("payment provider ready", zap.String("provider", provider.Name()))

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(db, cfg, provider, logger)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// newLogger builds the production JSON logger shared by server and checkout.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stdout"}
	zcfg.InitialFields = map[string]any{"service": "storefront"}

	return zcfg.Build()
}
