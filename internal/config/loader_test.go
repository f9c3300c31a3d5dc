package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\ngames_dir: /tmp\nprefix: gd-\nconsent_domain: true\ncors_origins: [\"https://a.example\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.GamesDir != "/tmp" || cfg.Prefix != "gd-" || !cfg.ConsentDomain || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","games_dir":"/g","version_label":"v1.2","failure_policy":"isolate","max_body_bytes":42}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.GamesDir != "/g" || cfg.VersionLabel != "v1.2" || cfg.FailurePolicy != "isolate" || cfg.MaxBodyBytes != 42 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\ngames_dir=\"/x\"\nlog_level=\"debug\"\nsplash_container_id=\"splash\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.GamesDir != "/x" || cfg.LogLevel != "debug" || cfg.SplashContainerID != "splash" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{Addr: ":1234", LogLevel: "debug"}.WithDefaults()
	def := Default()
	if cfg.Addr != ":1234" || cfg.LogLevel != "debug" {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
	if cfg.Prefix != def.Prefix || cfg.GamesDir != def.GamesDir || cfg.MaxBodyBytes != def.MaxBodyBytes || cfg.FailurePolicy != def.FailurePolicy {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cases := map[string]Config{
		"policy":  {FailurePolicy: "sometimes"},
		"level":   {LogLevel: "loud"},
		"format":  {LogFormat: "xml"},
		"addr":    {Addr: "no-port"},
		"bodymax": {MaxBodyBytes: -1},
	}
	for name, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
