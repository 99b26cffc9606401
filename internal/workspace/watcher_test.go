package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/fansub/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind string, n models.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind+":"+n.Kind.String()+":"+n.Path)
}

func (r *recorder) has(e string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.events {
		if got == e {
			return true
		}
	}
	return false
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

func startWatcher(t *testing.T) (string, *recorder) {
	t.Helper()
	vaultDir := t.TempDir()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &recorder{}
	go Watch(ctx, vaultDir, logger, rec.record)
	time.Sleep(100 * time.Millisecond)
	return vaultDir, rec
}

func TestWatcher_NewFolderAndNote(t *testing.T) {
	vaultDir, rec := startWatcher(t)

	if err := os.Mkdir(filepath.Join(vaultDir, "Manga"), 0o755); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created:folder:Manga")
	}, "folder creation not reported")

	// Give the watcher a moment to add the new directory.
	time.Sleep(100 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(vaultDir, "Manga", "Ch1.md"), []byte("# Ch1"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created:document:Manga/Ch1.md")
	}, "note in new folder not reported")
}

func TestWatcher_FolderRemoved(t *testing.T) {
	vaultDir, rec := startWatcher(t)

	dir := filepath.Join(vaultDir, "Novels")
	_ = os.Mkdir(dir, 0o755)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created:folder:Novels")
	}, "folder creation not reported")

	_ = os.Remove(dir)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("deleted:folder:Novels")
	}, "folder removal not reported")
}

func TestWatcher_HiddenIgnored(t *testing.T) {
	vaultDir, rec := startWatcher(t)

	_ = os.Mkdir(filepath.Join(vaultDir, ".fansub"), 0o755)
	_ = os.WriteFile(filepath.Join(vaultDir, "visible.md"), []byte("x"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created:document:visible.md")
	}, "visible note not reported")

	if rec.has("created:folder:.fansub") {
		t.Error("hidden folder should not be reported")
	}
}
