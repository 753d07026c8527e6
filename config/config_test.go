package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != DefaultPrompt || cfg.LogLevel != "warn" || len(cfg.Prelude) != 0 {
		t.Fatalf("cfg = %+v; want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mal.yaml")
	raw := `
prompt: "mal> "
log_level: debug
prelude:
  - (def! inc (fn* (x) (+ x 1)))
  - (def! dec (fn* (x) (- x 1)))
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "mal> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.HistoryFile == "" {
		t.Error("HistoryFile should keep its default")
	}
	if len(cfg.Prelude) != 2 || cfg.Prelude[1] != "(def! dec (fn* (x) (- x 1)))" {
		t.Errorf("Prelude = %q", cfg.Prelude)
	}
	if level, err := cfg.Level(); err != nil || level != slog.LevelDebug {
		t.Errorf("Level = %v, %v", level, err)
	}
}

func TestParseErrors(t *testing.T) {
	for _, raw := range []string{"prompt: [unclosed", "log_level: loud"} {
		if err := Parse([]byte(raw), Default()); err == nil {
			t.Errorf("Parse(%q) should fail", raw)
		}
	}
}
