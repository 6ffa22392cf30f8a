package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want %+v", cfg, Default())
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
log_level = "debug"
history_capacity = 4
mosaic_seed = 42

[preview]
max_dimension = 256
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{LogLevel: "debug", HistoryCapacity: 4, MosaicSeed: 42, Preview: Preview{MaxDimension: 256}}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load(writeConfig(t, `history_capacity = 3`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HistoryCapacity != 3 || cfg.LogLevel != "info" || cfg.Preview.MaxDimension != 1024 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	cfg, err := Load(writeConfig(t, `log_level = "debug"`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Level() != log.WarnLevel {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `history_capacity = `, "parse config"},
		{"unknown key", `histroy_capacity = 5`, "unknown keys: histroy_capacity"},
		{"small capacity", `history_capacity = 1`, "history_capacity must be at least 2"},
		{"bad level", `log_level = "loud"`, "log_level"},
		{"negative preview", "[preview]\nmax_dimension = -1", "max_dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("error = %v, want read config failure", err)
	}
}

func TestRand_FixedSeedRepeats(t *testing.T) {
	cfg := Default()
	cfg.MosaicSeed = 7
	a, b := cfg.Rand(), cfg.Rand()
	for i := 0; i < 5; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}
