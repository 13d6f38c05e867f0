package main

import (
	"fmt"
	"log"

	"github.com/prodboard/prodboard/internal/config"
	"github.com/prodboard/prodboard/internal/database"
	"github.com/prodboard/prodboard/internal/migrate"
	"github.com/prodboard/prodboard/internal/models"
)

// Prints the migration ledger summary per entity type.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.MigrationStatus{}); err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	summaries, err := migrate.NewLedger(db.DB).SummaryByEntityType()
	if err != nil {
		log.Fatalf("❌ Failed to read migration status: %v", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No migration records yet.")
		return
	}

	fmt.Printf("%-16s %8s %10s %8s %8s\n", "ENTITY TYPE", "TOTAL", "COMPLETED", "FAILED", "PENDING")
	for _, s := range summaries {
		fmt.Printf("%-16s %8d %10d %8d %8d\n", s.EntityType, s.Total, s.Completed, s.Failed, s.Pending)
	}
}
