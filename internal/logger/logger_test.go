package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("Messages below WARN should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("WARN and ERROR messages should be logged, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "scorer"})

	log.Info("score computed", map[string]interface{}{"score": 87})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Component != "scorer" {
		t.Errorf("Expected component scorer, got %s", entry.Component)
	}
	if entry.Message != "score computed" {
		t.Errorf("Unexpected message: %s", entry.Message)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: TextFormat, Output: &buf})
	tagged := base.WithComponent("orchestrator")

	tagged.Info("fan-out started")

	if !strings.Contains(buf.String(), "[orchestrator]") {
		t.Errorf("Component tag missing from output: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
		"FATAL":   FATAL,
		"bogus":   -1,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
