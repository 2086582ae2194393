package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/calder/quire/internal/storage"
)

const watcherDocJSON = `{"metadata":{"title":"Watched","modified":"2023-05-10"},"blocks":[{"type":"p","text":"hello"}]}`

// watcherTestEnv sets up a library dir, storage, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	libDir := t.TempDir()
	store, err := storage.NewFS(libDir)
	if err != nil {
		t.Fatal(err)
	}
	dbFile, err := os.CreateTemp("", "quire-watcher-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })
	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return libDir, store, db
}

func indexed(t *testing.T, db *DB, path string) bool {
	t.Helper()
	row, err := db.GetDocument(path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	return row != nil
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, libDir, quietLogger(), func(kind, path string) {
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(libDir, "new.json"), []byte(watcherDocJSON), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(t, db, "new.json")
	}, "new file not indexed by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "created:new.json" {
				return true
			}
		}
		return false
	}, "expected created:new.json callback")
}

func TestWatcher_InvalidDocumentSkipped(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, libDir, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(libDir, "bad.json"), []byte(`{"blocks": "nope"}`), 0o644)
	_ = os.WriteFile(filepath.Join(libDir, "good.json"), []byte(watcherDocJSON), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(t, db, "good.json")
	}, "valid file not indexed")

	if indexed(t, db, "bad.json") {
		t.Error("invalid document should not be indexed")
	}
}

func TestWatcher_NewDirWatched(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, libDir, quietLogger(), nil)

	time.Sleep(100 * time.Millisecond)

	subDir := filepath.Join(libDir, "subdir")
	_ = os.MkdirAll(subDir, 0o755)

	time.Sleep(200 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "deep.json"), []byte(watcherDocJSON), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(t, db, filepath.Join("subdir", "deep.json"))
	}, "file in new subdir not indexed by watcher")
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	_ = os.WriteFile(filepath.Join(libDir, "del.json"), []byte(watcherDocJSON), 0o644)
	Sync(db, store, quietLogger())

	if !indexed(t, db, "del.json") {
		t.Fatal("precondition: file should be indexed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, libDir, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(filepath.Join(libDir, "del.json"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(t, db, "del.json")
	}, "deleted file still in index")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	_ = os.WriteFile(filepath.Join(libDir, "old.json"), []byte(watcherDocJSON), 0o644)
	Sync(db, store, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, libDir, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Rename(filepath.Join(libDir, "old.json"), filepath.Join(libDir, "renamed.json"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(t, db, "old.json") && indexed(t, db, "renamed.json")
	}, "rename reconciliation failed: old path should be removed and new path indexed")
}

func TestSync_IndexesAndPrunes(t *testing.T) {
	libDir, store, db := watcherTestEnv(t)

	_ = os.WriteFile(filepath.Join(libDir, "a.json"), []byte(watcherDocJSON), 0o644)
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !indexed(t, db, "a.json") {
		t.Fatal("a.json should be indexed after sync")
	}

	_ = os.Remove(filepath.Join(libDir, "a.json"))
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if indexed(t, db, "a.json") {
		t.Error("a.json should be pruned after removal")
	}
}
