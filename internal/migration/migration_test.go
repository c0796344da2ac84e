package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tracklit/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestMigrations writes the given files to a temp dir and returns it as an fs.FS
func setupTestMigrations(t *testing.T, files map[string]string) (fs.FS, string) {
	t.Helper()

	dir := t.TempDir()
	for filename, content := range files {
		if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test migration %s: %v", filename, err)
		}
	}
	return os.DirFS(dir), dir
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count == 1
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	migrationFS, _ := setupTestMigrations(t, map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	migrationFS, _ := setupTestMigrations(t, map[string]string{
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "not a migration",
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	wantNames := []string{"init", "update", "another"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d: got version %d name %q", i, m.Version, m.Name)
		}
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing underscore",
			files:   map[string]string{"001init.sql": "SELECT 1;"},
			wantErr: "invalid migration filename format",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "version must be at least 1",
		},
		{
			name:    "duplicate version",
			files:   map[string]string{"001_init.sql": "SELECT 1;", "001_other.sql": "SELECT 1;"},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			migrationFS, _ := setupTestMigrations(t, tt.files)

			_, err := NewRunner(db, migrationFS, DriverSQLite).ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadMigrationFiles() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	migrationFS, dir := setupTestMigrations(t, map[string]string{
		"001_init.sql": `CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);`,
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	var messages []string
	count, err := runner.ApplyMigrations(func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations (1st) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	if err := os.WriteFile(filepath.Join(dir, "002_posts.sql"), []byte(`CREATE TABLE posts (id INTEGER PRIMARY KEY);`), 0644); err != nil {
		t.Fatalf("failed to write new migration: %v", err)
	}

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != 2 {
		t.Errorf("expected latest version 2, got %d", latest)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 more migration applied, got %d", count)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (3rd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no-op on third run, got %d", count)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if !tableExists(t, db, "users") || !tableExists(t, db, "posts") {
		t.Error("expected users and posts tables")
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	migrationFS, _ := setupTestMigrations(t, map[string]string{
		"001_init.sql": `
			CREATE TABLE users (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if tableExists(t, db, "users") {
		t.Error("table should not exist after failed migration")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	migrationFS, _ := setupTestMigrations(t, map[string]string{
		"001_init.sql": `CREATE TABLE users (id INTEGER PRIMARY KEY);`,
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	if err := runner.SetVersion(10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Fatal("ValidateVersion should have failed with newer database version")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with newer database version")
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	db := setupTestDB(t)
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access sqlite migrations: %v", err)
	}
	runner := NewRunner(db, subFS, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	for _, table := range []string{"moods", "habits", "habit_completions"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s was not created", table)
		}
	}

	if _, err := db.Exec(`INSERT INTO habits (name, created_at) VALUES ('Exercise', '2026-01-01T00:00:00.000000000Z')`); err != nil {
		t.Fatalf("insert habit failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO habit_completions (habit_id, date) VALUES (1, '2026-01-02')`); err != nil {
		t.Fatalf("insert completion failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO habit_completions (habit_id, date) VALUES (1, '2026-01-02')`); err == nil {
		t.Error("duplicate (habit_id, date) should violate the unique index")
	}
}

func TestCompletionUniqueMigrationCollapsesDuplicates(t *testing.T) {
	db := setupTestDB(t)

	initSQL, err := fs.ReadFile(migrations.FS, "sqlite/001_init.sql")
	if err != nil {
		t.Fatalf("failed to read init migration: %v", err)
	}
	uniqueSQL, err := fs.ReadFile(migrations.FS, "sqlite/002_completion_unique.sql")
	if err != nil {
		t.Fatalf("failed to read unique migration: %v", err)
	}
	migrationFS, dir := setupTestMigrations(t, map[string]string{
		"001_init.sql": string(initSQL),
	})
	runner := NewRunner(db, migrationFS, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations (init) failed: %v", err)
	}

	// Rows a racing toggle could have left behind before the index existed
	stmts := []string{
		`INSERT INTO habits (name, created_at) VALUES ('Read', '2026-01-01T00:00:00.000000000Z')`,
		`INSERT INTO habit_completions (habit_id, date) VALUES (1, '2026-01-02')`,
		`INSERT INTO habit_completions (habit_id, date) VALUES (1, '2026-01-02')`,
		`INSERT INTO habit_completions (habit_id, date) VALUES (1, '2026-01-03')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "002_completion_unique.sql"), uniqueSQL, 0644); err != nil {
		t.Fatalf("failed to write migration: %v", err)
	}
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations (unique) failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM habit_completions WHERE habit_id = 1`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 completions after dedupe, got %d", count)
	}
}
