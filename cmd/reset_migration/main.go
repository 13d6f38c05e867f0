package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prodboard/prodboard/internal/config"
	"github.com/prodboard/prodboard/internal/database"
	"github.com/prodboard/prodboard/internal/migrate"
	"github.com/prodboard/prodboard/internal/models"
)

// Clears the migration ledger for one entity type so the next import run
// re-processes every source record. Does not touch the target tables.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <feature|uiux_request>\n", os.Args[0])
		os.Exit(1)
	}

	entityType := os.Args[1]
	if entityType != models.EntityFeature && entityType != models.EntityUiUxRequest {
		log.Fatalf("❌ Unknown entity type %q", entityType)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	count, err := migrate.NewLedger(db.DB).ResetEntityType(entityType)
	if err != nil {
		log.Fatalf("❌ Reset failed: %v", err)
	}

	fmt.Printf("🗑️  Removed %d %s migration record(s)\n", count, entityType)
}
