package system

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, out := newTestContext(t, false)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(ctx.Store.GetConfigPath()); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized tracklit storage") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := newTestContext(t, false)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := ctx.Store.CreateHabit(context.Background(), "Exercise", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil || len(habits) != 1 {
		t.Errorf("init without --force must keep data, got %d habits (%v)", len(habits), err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _ := newTestContext(t, true)
	if _, err := ctx.Store.CreateHabit(context.Background(), "Exercise", time.Now()); err != nil {
		t.Fatal(err)
	}

	var prompted string
	ctx.Confirm = func(title string) (bool, error) {
		prompted = title
		return true, nil
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if prompted == "" {
		t.Error("--force without --yes should ask for confirmation")
	}

	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Errorf("expected an empty database after --force, got %d habits", len(habits))
	}

	mgr, _ := ctx.BackupManager()
	backups, err := mgr.List()
	if err != nil || len(backups) != 1 {
		t.Errorf("expected a safety backup before reset, got %d (%v)", len(backups), err)
	}
}

func TestInitCmd_ForceCancelled(t *testing.T) {
	ctx, _ := newTestContext(t, true)
	if _, err := ctx.Store.CreateHabit(context.Background(), "Exercise", time.Now()); err != nil {
		t.Fatal(err)
	}
	ctx.Confirm = func(string) (bool, error) { return false, nil }

	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("declined confirmation should abort init")
	}

	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil || len(habits) != 1 {
		t.Errorf("data should survive a cancelled reset, got %d (%v)", len(habits), err)
	}
}

func TestInitCmd_ForceYesSkipsPrompt(t *testing.T) {
	ctx, _ := newTestContext(t, true)

	if err := (&InitCmd{Force: true, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("init --force --yes failed: %v", err)
	}
}
