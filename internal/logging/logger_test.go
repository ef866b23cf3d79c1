// Package logging provides structured logging functionality tests
package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chybatronik/goAccountFinder/internal/config"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to unmarshal log entry %q: %v", buf.String(), err)
	}
	return logEntry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		{level: "invalid", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", "test-service", "1.0.0")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("Expected warn message to be written, got %q", buf.String())
	}
}

func TestLoggerWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug", "test-service", "1.0.0")

	reqID := "test-req-id-123"
	logger.WithRequestID(reqID).Info("test message")

	logEntry := decodeEntry(t, &buf)
	if logEntry["req_id"] != reqID {
		t.Errorf("Expected request ID %s, got %v", reqID, logEntry["req_id"])
	}
}

func TestLoggerRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug", "test-service", "1.0.0")

	logger.Request("req-123", "GET", "/api/accounts", 200, 12)

	logEntry := decodeEntry(t, &buf)
	if logEntry["msg"] != "HTTP request completed" {
		t.Errorf("Expected message 'HTTP request completed', got %v", logEntry["msg"])
	}
	if logEntry["path"] != "/api/accounts" {
		t.Errorf("Expected path /api/accounts, got %v", logEntry["path"])
	}
	if logEntry["status"] != float64(200) {
		t.Errorf("Expected status 200, got %v", logEntry["status"])
	}
	if logEntry["latency_ms"] != float64(12) {
		t.Errorf("Expected latency 12, got %v", logEntry["latency_ms"])
	}
}

func TestLoggerServiceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "goAccountFinder", "1.2.3")

	logger.Startup("service starting")

	logEntry := decodeEntry(t, &buf)
	if logEntry["service"] != "goAccountFinder" {
		t.Errorf("Expected service goAccountFinder, got %v", logEntry["service"])
	}
	if logEntry["version"] != "1.2.3" {
		t.Errorf("Expected version 1.2.3, got %v", logEntry["version"])
	}
}

func TestLoggerDatabaseError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug", "test-service", "1.0.0")

	logger.DatabaseError("lookup failed", os.ErrDeadlineExceeded)

	logEntry := decodeEntry(t, &buf)
	if logEntry["msg"] != "database: lookup failed" {
		t.Errorf("Expected prefixed message, got %v", logEntry["msg"])
	}
	if logEntry["level"] != "ERROR" {
		t.Errorf("Expected ERROR level, got %v", logEntry["level"])
	}
	if logEntry["error"] == "" {
		t.Error("Expected error field to be set")
	}
}

func TestNewWithFileSink(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := New(config.LoggingConfig{
		Level:   "info",
		Format:  "text",
		FileDir: dir,
	}, "finder", "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("written to file", "table", "accounts")
	cleanup()

	matches, err := filepath.Glob(filepath.Join(dir, "finder_*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("Expected one log file, got %v (err %v)", matches, err)
	}

	content, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "written to file") {
		t.Errorf("Expected log file to contain the message, got %q", content)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var infoBuf, errorBuf bytes.Buffer
	handler := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(handler).With("component", "test")

	logger.Info("info only")
	logger.Error("both")

	if strings.Count(infoBuf.String(), "\n") != 2 {
		t.Errorf("Expected 2 entries in info sink, got %q", infoBuf.String())
	}
	if strings.Count(errorBuf.String(), "\n") != 1 {
		t.Errorf("Expected 1 entry in error sink, got %q", errorBuf.String())
	}
	if !strings.Contains(errorBuf.String(), `"component":"test"`) {
		t.Errorf("Expected attrs to propagate, got %q", errorBuf.String())
	}
}

func TestLoggerRequestLevelFollowsStatus(t *testing.T) {
	testCases := []struct {
		status int
		level  string
	}{
		{status: 200, level: "INFO"},
		{status: 304, level: "INFO"},
		{status: 400, level: "WARN"},
		{status: 429, level: "WARN"},
		{status: 503, level: "ERROR"},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, "debug", "test-service", "1.0.0")

		logger.Request("req-1", "GET", "/api/accounts", tc.status, 1, FieldRowCount, 3)

		logEntry := decodeEntry(t, &buf)
		if logEntry["level"] != tc.level {
			t.Errorf("status %d: expected level %s, got %v", tc.status, tc.level, logEntry["level"])
		}
		if logEntry[FieldRowCount] != float64(3) {
			t.Errorf("status %d: expected extra field row_count=3, got %v", tc.status, logEntry[FieldRowCount])
		}
	}
}
