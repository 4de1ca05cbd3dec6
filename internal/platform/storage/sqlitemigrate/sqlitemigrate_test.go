package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}

	if err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplyMigrationsSkipsAlreadyApplied(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);"),
		},
	}
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("apply migrations pass %d: %v", i, err)
		}
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
}

func TestApplyMigrationsDoesNotRecordFailedMigration(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")},
	}
	if err := ApplyMigrations(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("migration rows = %d, want 0", rows)
	}

	good := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id INTEGER PRIMARY KEY);")},
	}
	if err := ApplyMigrations(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
}

func TestApplyMigrationsRespectsMigrationRoot(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	migrations := fstest.MapFS{
		"sessions/001_sessions.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE session_rows(id TEXT PRIMARY KEY);"),
		},
		"sessions/README.md": &fstest.MapFile{Data: []byte("not a migration")},
	}
	if err := ApplyMigrations(context.Background(), db, migrations, "sessions"); err != nil {
		t.Fatalf("apply migrations with root: %v", err)
	}

	applied, err := Applied(context.Background(), db)
	if err != nil {
		t.Fatalf("applied: %v", err)
	}
	if len(applied) != 1 || !applied["sessions/001_sessions.sql"] {
		t.Fatalf("applied = %v, want sessions/001_sessions.sql", applied)
	}
	if !tableExists(t, db, "session_rows") {
		t.Fatal("expected migrated table in root-based migration")
	}
}

func TestLoadSortsByName(t *testing.T) {
	t.Parallel()

	migrations := fstest.MapFS{
		"002_b.sql": &fstest.MapFile{Data: []byte("SELECT 2;")},
		"001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	loaded, err := Load(migrations, ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Name != "001_a.sql" || loaded[1].Name != "002_b.sql" {
		t.Fatalf("loaded = %+v, want 001_a.sql then 002_b.sql", loaded)
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE a(id INT);", want: "\nCREATE TABLE a(id INT);"},
		{name: "up and down", content: "-- +migrate Up\nX;\n-- +migrate Down\nY;", want: "\nX;\n"},
	}
	for _, tc := range tests {
		if got := ExtractUpMigration(tc.content); got != tc.want {
			t.Fatalf("%s: ExtractUpMigration = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	t.Parallel()

	if IsAlreadyExistsError(nil) {
		t.Fatal("nil error should not be an already-exists error")
	}
	if !IsAlreadyExistsError(errors.New("table items already exists")) {
		t.Fatal("expected already exists match")
	}
	if !IsAlreadyExistsError(errors.New("duplicate column name: note")) {
		t.Fatal("expected duplicate column match")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("syntax error should not match")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
