package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Named(New(&buf, "warn"), "tracker")
	l.Info("hidden")
	l.Warn("shown", "key", "players")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=tracker") || !strings.Contains(out, "key=players") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "laxtime.log")
	l, c, err := Open(path, "info")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello")
	c.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file = %q", data)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
