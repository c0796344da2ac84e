package system

import (
	"strings"
	"testing"
)

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out := newTestContext(t, true)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestMigrateCmd_AppliesPending(t *testing.T) {
	ctx, out := newTestContext(t, true)

	if _, err := ctx.Store.GetDB().Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatalf("failed to rewind schema version: %v", err)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Applied 1 migration") {
		t.Errorf("unexpected output %q", out.String())
	}

	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil || current != latest {
		t.Errorf("SchemaVersion() = %d, %d, %v after migrate", current, latest, err)
	}
}
