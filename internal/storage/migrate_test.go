package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}

	s := NewStore(kv)
	if err := s.SaveTask(sampleTask("task-rt-1")); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := s.Task("task-rt-1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Task task-rt-1" {
		t.Fatalf("unexpected title after roundtrip: %q", got.Title)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "idem.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := MigrateUp(db); err != nil {
			t.Fatalf("migrate up #%d: %v", i+1, err)
		}
	}
}

func TestNewSQLiteKVRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteKV(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
