package main

import (
	"fmt"
	"log"

	"github.com/prodboard/prodboard/internal/config"
	"github.com/prodboard/prodboard/internal/database"
	"github.com/prodboard/prodboard/internal/models"
)

// Seeds demo products for local development against the embedded database.
// The gitlab_issue_id values match the tickets used in the sample GitLab
// project so the import pipeline can resolve product references.
func main() {
	fmt.Println("🌱 prodboard demo product seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	var existing int64
	db.Model(&models.Product{}).Count(&existing)
	if existing > 0 {
		fmt.Printf("⚠️  Database already has %d products, nothing to do\n", existing)
		return
	}

	products := []models.Product{
		{Name: "Mobile App", Description: "Customer-facing iOS/Android app", GitlabIssueID: ptr(int64(101))},
		{Name: "Web Dashboard", Description: "Internal analytics dashboard", GitlabIssueID: ptr(int64(102))},
		{Name: "Partner API", Description: "Public integration API", GitlabIssueID: ptr(int64(103))},
	}

	for _, p := range products {
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("❌ Failed to create product %q: %v", p.Name, err)
		}
		fmt.Printf("   ✅ %s\n", p.Name)
	}

	fmt.Printf("✅ Seeded %d products\n", len(products))
}

func ptr[T any](v T) *T {
	return &v
}
