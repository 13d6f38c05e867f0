package main

import (
	"fmt"
	"log"

	"github.com/prodboard/prodboard/internal/buildinfo"
	"github.com/prodboard/prodboard/internal/config"
	"github.com/prodboard/prodboard/internal/database"
	"github.com/prodboard/prodboard/internal/migrate"
	"github.com/prodboard/prodboard/internal/models"
	"github.com/prodboard/prodboard/internal/services/gitlab"
)

// Migrates historical feature and UI/UX request data out of GitLab ticket
// notes. Safe to re-run: completed records are skipped via the migration
// ledger.
func main() {
	fmt.Printf("🚚 prodboard GitLab note migration (%s)\n", buildinfo.Version())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	err = db.AutoMigrate(
		&models.Product{},
		&models.Feature{},
		&models.FeaturePlatform{},
		&models.UiUxRequest{},
		&models.MigrationStatus{},
	)
	if err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	client := gitlab.NewClient(cfg.GitLab.BaseURL, cfg.GitLab.Token, cfg.GitLab.ProjectID)

	if len(cfg.GitLab.FeatureTicketIIDs) > 0 {
		importer := migrate.NewNotesImporter(db.DB, client, models.EntityFeature, cfg.GitLab.FeatureTicketIIDs)
		if _, err := importer.Run(); err != nil {
			log.Fatalf("❌ Feature migration aborted: %v", err)
		}
	}

	if len(cfg.GitLab.UiUxTicketIIDs) > 0 {
		importer := migrate.NewNotesImporter(db.DB, client, models.EntityUiUxRequest, cfg.GitLab.UiUxTicketIIDs)
		if _, err := importer.Run(); err != nil {
			log.Fatalf("❌ UI/UX request migration aborted: %v", err)
		}
	}

	fmt.Println("✅ Note migration finished")
}
