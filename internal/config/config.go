package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	GitLab   GitLabConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// GitLabConfig holds GitLab source configuration for the import pipeline
type GitLabConfig struct {
	BaseURL   string
	Token     string
	ProjectID int64

	// Tickets whose notes are migrated, per target entity type.
	FeatureTicketIIDs []int64
	UiUxTicketIIDs    []int64

	// Labels iterated by the issue-based migration variant.
	IssueLabels []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	token := os.Getenv("GITLAB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITLAB_TOKEN is required")
	}

	projectID, err := strconv.ParseInt(getEnv("GITLAB_PROJECT_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GITLAB_PROJECT_ID: %w", err)
	}
	if projectID == 0 {
		return nil, fmt.Errorf("GITLAB_PROJECT_ID is required")
	}

	featureIIDs, err := parseIntList(getEnv("GITLAB_FEATURE_TICKET_IIDS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid GITLAB_FEATURE_TICKET_IIDS: %w", err)
	}
	uiuxIIDs, err := parseIntList(os.Getenv("GITLAB_UIUX_TICKET_IIDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid GITLAB_UIUX_TICKET_IIDS: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "prodboard"),
			Quiet:    getEnv("DB_QUIET", "false") == "true",
		},
		GitLab: GitLabConfig{
			BaseURL:           getEnv("GITLAB_URL", "https://gitlab.com"),
			Token:             token,
			ProjectID:         projectID,
			FeatureTicketIIDs: featureIIDs,
			UiUxTicketIIDs:    uiuxIIDs,
			IssueLabels:       parseList(getEnv("GITLAB_REQUEST_LABELS", "feature")),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseList splits a comma-separated env value, dropping empty entries
func parseList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseIntList splits a comma-separated env value into int64s
func parseIntList(value string) ([]int64, error) {
	var out []int64
	for _, part := range parseList(value) {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
