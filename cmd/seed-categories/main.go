// seed-categories migrates the schema and inserts the system transaction
// category set (the accountant template's column headings). Safe to re-run.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-categories
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if err := models.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}
	if err := models.SeedTransactionCategories(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("system categories seeded")
}
