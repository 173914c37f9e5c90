package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenlight/internal/logging"
)

func TestNewConsoleWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "cache")
	logger.Info("entry refreshed", logging.String("title", "juno"), logging.Bool("produced", true))
	logger.Debug("suppressed at info level")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(content))
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("expected one record, got %q", line)
	}
	if !strings.Contains(line, "INFO cache: entry refreshed") {
		t.Errorf("unexpected record layout: %q", line)
	}
	if !strings.Contains(line, "title=juno") || !strings.Contains(line, "produced=true") {
		t.Errorf("missing key=value pairs: %q", line)
	}
	if strings.Contains(line, "suppressed") {
		t.Errorf("debug record should be filtered at info level: %q", line)
	}
}

func TestNewJSONRecordShape(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "records.json")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("lookup degraded", logging.String(logging.FieldErrorHint, "check network"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if record["level"] != "warn" {
		t.Errorf("level = %v, want warn", record["level"])
	}
	if record["msg"] != "lookup degraded" {
		t.Errorf("msg = %v, want lookup degraded", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("record missing ts field")
	}
	if record[logging.FieldErrorHint] != "check network" {
		t.Errorf("error_hint = %v, want check network", record[logging.FieldErrorHint])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "verbose",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("visible")
	logger.Debug("hidden")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "visible") || strings.Contains(string(content), "hidden") {
		t.Errorf("unexpected filtering with fallback level: %q", content)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("goes nowhere", logging.Error(os.ErrNotExist))
}
