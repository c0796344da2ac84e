package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

// newTestContext returns a CLI context over a SQLite file in a temp dir.
// The store is initialized when initialize is set.
func newTestContext(t *testing.T, initialize bool) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracklit.db")
	store := sqlite.NewStore(dbPath)
	if initialize {
		if err := store.Init(); err != nil {
			t.Fatalf("failed to initialize store: %v", err)
		}
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(store, &config.Config{
		DBPath:         dbPath,
		Addr:           "127.0.0.1:0",
		CORSOrigins:    []string{"*"},
		Timezone:       "UTC",
		MoodWindowDays: 30,
	})
	ctx.Out = &out
	ctx.Confirm = func(string) (bool, error) {
		t.Error("unexpected confirmation prompt")
		return false, nil
	}
	return ctx, &out
}
