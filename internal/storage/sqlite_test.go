package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func setupSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "taskboard-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestSQLiteKVGetSet(t *testing.T) {
	kv := setupSQLite(t)
	kv.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	if _, ok, err := kv.Get(TaskKey); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(TaskKey, `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(TaskKey, `[{"id":"a"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := kv.Get(TaskKey)
	if err != nil || !ok || got != `[{"id":"a"}]` {
		t.Fatalf("get = %q ok=%v err=%v", got, ok, err)
	}

	at, err := kv.UpdatedAt(TaskKey)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !at.Equal(kv.now()) {
		t.Fatalf("unexpected updated_at: %v", at)
	}
	if _, err := kv.UpdatedAt("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteInMemoryKeepsSchemaAcrossCalls(t *testing.T) {
	kv, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	if got := kv.db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("max open connections = %d, want 1", got)
	}

	s := NewStore(kv)
	if err := s.SaveTask(sampleTask("mem-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A dedicated connection must see the same database as the store.
	conn, err := kv.db.Conn(context.Background())
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	var n int
	if err := conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("count on held conn: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
	tasks, err := s.Tasks()
	if err != nil || len(tasks) != 1 {
		t.Fatalf("tasks = %#v, err=%v", tasks, err)
	}
}

func TestStoreOverSQLite(t *testing.T) {
	s := NewStore(setupSQLite(t))
	task := sampleTask("sql-1")
	if err := s.SaveTask(task); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.UpdateTaskStatus(task.ID, model.StatusDone); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, err := s.Task(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusDone || got.Title != task.Title {
		t.Fatalf("unexpected task: %#v", got)
	}
	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Task(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	first, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	s := NewStore(first)
	if err := s.SaveCategory(model.Category{ID: "c1", Name: "Errands"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	second, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cats, err := NewStore(second).Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Errands" {
		t.Fatalf("unexpected categories: %#v", cats)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err=%v", err)
	}
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	kv, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if _, _, err := kv.Get(TaskKey); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if _, err := NewFileKV("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		backend Backend
		path    string
	}{
		{BackendMemory, ""},
		{BackendFile, filepath.Join(dir, "kv.json")},
		{BackendSQLite, filepath.Join(dir, "kv.db")},
		{Backend("SQLITE"), filepath.Join(dir, "kv2.db")},
	}
	for _, tc := range cases {
		kv, err := Open(tc.backend, tc.path)
		if err != nil {
			t.Fatalf("open %s: %v", tc.backend, err)
		}
		if err := kv.Set("k", "v"); err != nil {
			t.Fatalf("%s set: %v", tc.backend, err)
		}
		if v, ok, err := kv.Get("k"); err != nil || !ok || v != "v" {
			t.Fatalf("%s get = %q %v %v", tc.backend, v, ok, err)
		}
		if err := kv.Close(); err != nil {
			t.Fatalf("%s close: %v", tc.backend, err)
		}
	}

	if _, err := Open(Backend("redis"), ""); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
