package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/nfrund/golfjourneys/internal/config"
	"github.com/nfrund/golfjourneys/internal/logging"
)

// ProjectRoot walks up from the working directory to the directory holding go.mod.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	path, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}
}

// ConfigForTests loads the .env.test file and returns a valid config.
// This is the definitive way to get configuration for tests that build the app.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()

	env, err := godotenv.Read(filepath.Join(ProjectRoot(t), ".env.test"))
	if err != nil {
		t.Fatalf("failed to load .env.test file: %v", err)
	}

	// t.Setenv restores the previous environment when the test ends.
	for key, value := range env {
		t.Setenv(key, value)
	}

	cfg := config.FromEnv()
	logging.New(cfg.LogFormat, cfg.LogLevel)
	return cfg
}
