package system

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateCmd_Clean(t *testing.T) {
	ctx, out := newTestContext(t, true)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestValidateCmd_ReportsConflicts(t *testing.T) {
	ctx, out := newTestContext(t, true)
	for _, name := range []string{"Exercise", "exercise "} {
		if _, err := ctx.Store.CreateHabit(context.Background(), name, time.Now()); err != nil {
			t.Fatal(err)
		}
	}

	err := (&ValidateCmd{}).Run(ctx)
	if !errors.Is(err, ErrConflicts) {
		t.Fatalf("validate error = %v, want ErrConflicts", err)
	}
	if !strings.Contains(out.String(), "Conflicts detected:") {
		t.Errorf("expected a conflict report, got %q", out.String())
	}
}
