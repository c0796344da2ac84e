package backup

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracklit.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, name := range []string{"Exercise", "Read"} {
		if _, err := store.CreateHabit(ctx, name, time.Now()); err != nil {
			t.Fatalf("failed to create habit: %v", err)
		}
	}
	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&n); err != nil {
		t.Fatalf("failed to count habits: %v", err)
	}
	return n
}

// steppingClock returns a clock that advances one second per call
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.Dir())
	}
	if got := countHabits(t, path); got != 2 {
		t.Errorf("backup has %d habits, want 2", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestCreate_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct backup paths")
	}
	if filepath.Base(second) != constants.BackupFilePrefix+"20260102-030405-1"+constants.BackupFileSuffix {
		t.Errorf("unexpected collision name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("expected the counter backup first, got %+v", backups)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	total := constants.MaxBackups + 5
	var last string
	for i := 0; i < total; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error: %v", i, err)
		}
		last = p
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}
	if backups[0].Path != last {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, last)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	// Unrelated files are ignored
	for _, name := range []string{"notes.txt", constants.BackupFilePrefix + "garbage" + constants.BackupFileSuffix} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info %+v", b)
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name        string
		wantOK      bool
		wantCounter int
	}{
		{"tracklit-20260102-030405.db", true, 0},
		{"tracklit-20260102-030405-7.db", true, 7},
		{"tracklit-20260102-0304.db", false, 0},
		{"tracklit-20260102-030405-x.db", false, 0},
		{"other-20260102-030405.db", false, 0},
		{"tracklit-20260102-030405.sql", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, counter, ok := parseName(tt.name)
			if ok != tt.wantOK || counter != tt.wantCounter {
				t.Errorf("parseName(%q) = %d, %v; want %d, %v", tt.name, counter, ok, tt.wantCounter, tt.wantOK)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := store.CreateHabit(context.Background(), "Meditate", time.Now()); err != nil {
		t.Fatalf("CreateHabit() error: %v", err)
	}
	store.Close()

	if got := countHabits(t, dbPath); got != 3 {
		t.Fatalf("expected 3 habits before restore, got %d", got)
	}

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("expected 2 habits after restore, got %d", got)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if got := countHabits(t, safety); got != 3 {
		t.Errorf("safety backup has %d habits, want 3", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestore_InvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(junk); err == nil {
		t.Error("expected an error for a corrupt backup")
	}

	// A valid SQLite file without the habits table is rejected
	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.Restore(foreign); err == nil {
		t.Error("expected an error for a non-tracklit database")
	}

	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("database changed by failed restore: %d habits", got)
	}
}
