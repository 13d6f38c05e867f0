package buildinfo

import "time"

// Set via -ldflags at build time
var (
	BuildTime  string // when the binary was compiled
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// Version returns a printable build identifier for script banners
func Version() string {
	if CommitHash == "" {
		return "dev"
	}
	return CommitHash
}
