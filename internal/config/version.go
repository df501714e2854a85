package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// GetVersion returns version from environment variable or calculates from git
func GetVersion() string {
	// Version is set by CI/CD in deployed environments
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	baseVersion := getBaseVersion()
	commitCount := getGitCommitCount()

	if commitCount > 0 {
		return baseVersion + "." + strconv.Itoa(commitCount)
	}

	return baseVersion
}

// getBaseVersion reads the base version from VERSION file
func getBaseVersion() string {
	versionPath := filepath.Join(".", "VERSION")
	if content, err := os.ReadFile(versionPath); err == nil {
		return strings.TrimSpace(string(content))
	}

	return "0.1.0"
}

// getGitCommitCount gets the total commit count from git
func getGitCommitCount() int {
	cmd := exec.Command("git", "rev-list", "--all", "--count", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return 0
	}

	countStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return 0
	}

	return count
}
