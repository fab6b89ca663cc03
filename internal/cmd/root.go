package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - E-Commerce Backend",
	Long: `Storefront is an e-commerce backend exposing REST endpoints for
customer registration, authentication, product catalog management,
shopping carts, checkout and shipment logging, backed by MySQL.

Run the HTTP server with 'run', or manage the database schema with
'migrate' and 'seed'.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
