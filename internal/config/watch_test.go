package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "prefix: one-\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	err := Watch(ctx, p, func(c Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		got <- c
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Unrelated files in the same directory must not trigger a reload.
	writeTempFile(t, d, "other.yaml", "prefix: nope-\n")
	if err := os.WriteFile(p, []byte("prefix: two-\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case c := <-got:
		if c.Prefix != "two-" {
			t.Fatalf("reloaded prefix=%q, want two-", c.Prefix)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload within 5s")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	if err := Watch(context.Background(), "/definitely/not/here/cfg.yaml", func(Config, error) {}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
