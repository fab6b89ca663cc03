package main

import (
	"github.com/joho/godotenv"
	"github.com/matthieukhl/storefront/internal/cmd"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	cmd.Execute()
}
