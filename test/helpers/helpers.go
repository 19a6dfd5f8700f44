package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// EnvTestMongoURI gates tests that need a running MongoDB
const EnvTestMongoURI = "CATALOGSEED_TEST_MONGO_URI"

// GetFixturePath returns the absolute path to the test fixtures directory
func GetFixturePath(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	return filepath.Join(filepath.Dir(filename), "..", "fixtures")
}

// GetSeedFixture returns the path to a seed file under fixtures/seeds
func GetSeedFixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(GetFixturePath(t), "seeds", name)
}

// CreateTempDir creates a temporary directory for tests
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "catalogseed-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// WriteFile writes content to name inside dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// RequireMongo returns the test MongoDB URI or skips the test
func RequireMongo(t *testing.T) string {
	t.Helper()
	uri := os.Getenv(EnvTestMongoURI)
	if uri == "" {
		t.Skipf("%s not set, skipping MongoDB test", EnvTestMongoURI)
	}
	return uri
}

// UniqueDatabase returns a database name no other test run uses
func UniqueDatabase(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("catalogseed_test_%d", time.Now().UnixNano())
}
