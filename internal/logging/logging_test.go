package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	if err != nil || level != zerolog.WarnLevel {
		t.Fatalf("expected default warn level, got %v err=%v", level, err)
	}
	level, err = ParseLevel(" DEBUG ")
	if err != nil || level != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v err=%v", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, zerolog.InfoLevel), "store")
	log.Info().Str("slot", "moyenneCalc:v1").Msg("saved state")
	log.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "saved state") || !strings.Contains(out, "component=store") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message should be filtered: %q", out)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "moyenne.log")
	log, closeFn, err := OpenFile(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	log.Info().Msg("first")
	if err := closeFn(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "first") {
		t.Fatalf("expected message in log file, got %q", data)
	}
}
