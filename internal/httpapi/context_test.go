package httpapi

import (
	"context"
	"testing"
)

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	if serverBaseCtx.Err() == nil {
		t.Fatalf("expected installed context to be canceled")
	}
	// nolint:staticcheck // SA1012: this test intentionally passes nil to verify fallback behavior
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil {
		t.Fatalf("expected background context after reset")
	}
}
