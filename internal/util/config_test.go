package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if os.Getenv("SPLUFP_MAX_FORCE_DEPTH") == "" && config.MaxForceDepth != 10000 {
		t.Errorf("expected default force depth, got %d", config.MaxForceDepth)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splufp.toml")
	content := `
log_level = "debug"
max_force_depth = 250

[database]
driver = "sqlite3"
dsn = "file:rows.db"
query = "SELECT * FROM orders"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if os.Getenv("SPLUFP_LOG_LEVEL") == "" && config.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", config.LogLevel)
	}
	if os.Getenv("SPLUFP_MAX_FORCE_DEPTH") == "" && config.MaxForceDepth != 250 {
		t.Errorf("expected force depth 250, got %d", config.MaxForceDepth)
	}
	if os.Getenv("SPLUFP_DB_DRIVER") == "" && config.Database.Driver != "sqlite3" {
		t.Errorf("expected sqlite3 driver, got %s", config.Database.Driver)
	}
	if config.HistoryFile != ".splufp_history" && os.Getenv("SPLUFP_HISTORY_FILE") == "" {
		t.Errorf("default history file was lost: %s", config.HistoryFile)
	}
}

func TestLoadConfigurationErrors(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("log_level = "), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, err := LoadConfiguration(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestGetContextLines(t *testing.T) {
	got := GetContextLines("add 1 )", 6)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", got)
	}
	if !strings.HasSuffix(lines[0], "add 1 )") {
		t.Errorf("source line missing: %q", lines[0])
	}
	if strings.Index(lines[1], "^") != strings.Index(lines[0], ")") {
		t.Errorf("caret misplaced:\n%s", got)
	}
}
