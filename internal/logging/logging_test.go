package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		" DEBUG ":  slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"info":     slog.LevelInfo,
		"":         slog.LevelInfo,
		"verbose?": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("hidden")
	logger.Error("shown", "locator", "x")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "locator=x") {
		t.Fatalf("error entry missing: %q", out)
	}
}

func TestOpen_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filmcard.log")

	for i := 0; i < 2; i++ {
		logger, closer, err := Open(path, "info")
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		logger.Info("entry")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(data), "msg=entry"); got != 2 {
		t.Fatalf("entries = %d, want 2 (file %q)", got, data)
	}
}
