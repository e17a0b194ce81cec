package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// buildVersion can be set at link time with -ldflags "-X dailyair/internal/config.buildVersion=1.2.3"
var buildVersion string

// fallbackVersion is reported when neither the build nor the source tree carries a version
const fallbackVersion = "0.1.0"

// GetVersion returns the service version: APP_VERSION, then the link-time
// version, then the VERSION file plus the git commit count.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if buildVersion != "" {
		return buildVersion
	}

	baseVersion := getBaseVersion()
	if commitCount := getGitCommitCount(); commitCount > 0 {
		return baseVersion + "." + strconv.Itoa(commitCount)
	}
	return baseVersion
}

// getBaseVersion reads the VERSION file from the working directory or one of its parents
func getBaseVersion() string {
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		content, err := os.ReadFile(filepath.Join(dir, "VERSION"))
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return fallbackVersion
}

// getGitCommitCount gets the total commit count from git, 0 outside a repository
func getGitCommitCount() int {
	output, err := exec.Command("git", "rev-list", "--count", "HEAD").Output()
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0
	}
	return count
}
