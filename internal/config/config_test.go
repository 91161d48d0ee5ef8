package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Save.Backend != "file" || cfg.Save.Backups != 3 {
		t.Fatalf("unexpected save defaults: %+v", cfg.Save)
	}
	if cfg.Game.Variant != "network" || cfg.Game.Seed != 0 {
		t.Fatalf("unexpected game defaults: %+v", cfg.Game)
	}
	if cfg.Window.FPS != 60 {
		t.Fatalf("fps=%d", cfg.Window.FPS)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quietcurrent.yaml")
	body := "save:\n  backend: sqlite\ngame:\n  seed: 42\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Save.Backend != "sqlite" || cfg.Game.Seed != 42 {
		t.Fatalf("overlay not applied: %+v %+v", cfg.Save, cfg.Game)
	}
	if cfg.Save.Path != "quietcurrent-save.json" || cfg.Log.Format != "text" {
		t.Fatalf("defaults lost under overlay: %+v %+v", cfg.Save, cfg.Log)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"backend": "save:\n  backend: s3\n",
		"variant": "game:\n  variant: orchard\n",
		"level":   "log:\n  level: loud\n",
		"format":  "log:\n  format: xml\n",
		"window":  "window:\n  width: 10\n",
		"yaml":    "save: [",
	}
	dir := t.TempDir()
	for name, body := range tests {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Game.Variant = "crops"
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *again != *cfg {
		t.Fatalf("round trip changed config:\n%+v\n%+v", cfg, again)
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	LogConfig{Level: "debug", Format: "json"}.Logger(&buf).Debug("hello", "k", 1)
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("expected json line, got %q", buf.String())
	}

	buf.Reset()
	LogConfig{Level: "warn", Format: "text"}.Logger(&buf).Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn, got %q", buf.String())
	}
}
