package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	originalVersion := os.Getenv("APP_VERSION")
	defer func() {
		if originalVersion != "" {
			os.Setenv("APP_VERSION", originalVersion)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	tests := []struct {
		name           string
		envVersion     string
		expectContains string
	}{
		{name: "version from environment variable", envVersion: "1.2.3", expectContains: "1.2.3"},
		{name: "pre-release version", envVersion: "2.0.0-beta.1", expectContains: "2.0.0-beta.1"},
		{name: "no env var", envVersion: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("APP_VERSION")
			if tt.envVersion != "" {
				os.Setenv("APP_VERSION", tt.envVersion)
			}

			version := GetVersion()
			if version == "" {
				t.Error("Version should not be empty")
			}
			if tt.expectContains != "" && !strings.Contains(version, tt.expectContains) {
				t.Errorf("Expected version to contain '%s', got '%s'", tt.expectContains, version)
			}
		})
	}
}

func TestReadVersionFile(t *testing.T) {
	tempDir := t.TempDir()
	sub := filepath.Join(tempDir, "service")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "VERSION"), []byte("1.5.0\n"), 0644); err != nil {
		t.Fatalf("Failed to create test VERSION file: %v", err)
	}

	if v := readVersionFile(tempDir); v != "1.5.0" {
		t.Errorf("Expected '1.5.0' from dir, got '%s'", v)
	}
	if v := readVersionFile(sub); v != "1.5.0" {
		t.Errorf("Expected '1.5.0' from parent dir, got '%s'", v)
	}
	if v := readVersionFile(t.TempDir()); v != "" {
		t.Errorf("Expected no version, got '%s'", v)
	}
}
