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

// Migrates labeled GitLab issues into feature rows. Issue descriptions may
// carry their metadata as front-matter or as a fenced yaml block. A
// transport failure on the issues endpoint is fatal; re-running after a fix
// resumes where the ledger left off.
func main() {
	fmt.Printf("🚚 prodboard GitLab issue migration (%s)\n", buildinfo.Version())

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
		&models.MigrationStatus{},
	)
	if err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	client := gitlab.NewClient(cfg.GitLab.BaseURL, cfg.GitLab.Token, cfg.GitLab.ProjectID)

	importer := migrate.NewIssuesImporter(db.DB, client, cfg.GitLab.IssueLabels)
	if _, err := importer.Run(); err != nil {
		log.Fatalf("❌ Issue migration aborted: %v", err)
	}

	fmt.Println("✅ Issue migration finished")
}
