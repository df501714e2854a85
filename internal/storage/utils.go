package storage

import (
	"fmt"
	"strings"
	"time"
)

// briefingPrefix is the top-level folder all archived briefings live under.
const briefingPrefix = "briefings"

// BriefingFolderPath generates a consistent folder path for a briefing.
// Format: briefings/YYYY/MM/DD/SkyBriefing-YYYY-MM-DD-HH-MM-SS
func BriefingFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/SkyBriefing-%04d-%02d-%02d-%02d-%02d-%02d",
		briefingPrefix,
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// ContentType determines the MIME content type based on file extension.
func ContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
