package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the version from APP_VERSION, a VERSION file next to
// the working directory, or the module build info
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if v := readVersionFile("."); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		v := strings.TrimPrefix(info.Main.Version, "v")
		if v != "" && v != "(devel)" {
			return v
		}
	}
	return fallbackVersion
}

// readVersionFile looks for VERSION in dir and its parent
func readVersionFile(dir string) string {
	for _, path := range []string{filepath.Join(dir, "VERSION"), filepath.Join(dir, "..", "VERSION")} {
		if content, err := os.ReadFile(path); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return ""
}
