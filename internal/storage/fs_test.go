package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/fansub/internal/apperr"
	"github.com/starford/fansub/internal/models"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempVault(t)
	if err := s.Write("a/b/c.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a/b/c.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestReadMissingIsNotExist(t *testing.T) {
	s := tempVault(t)
	_, err := s.Read("nope.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestCreate(t *testing.T) {
	s := tempVault(t)
	ctx := context.Background()
	if err := s.Create(ctx, "Manga/Ch1.md", []byte("first")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := s.Read("Manga/Ch1.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("content = %q", got)
	}
}

func TestCreateExisting(t *testing.T) {
	s := tempVault(t)
	ctx := context.Background()
	_ = s.Create(ctx, "dup.md", []byte("first"))

	err := s.Create(ctx, "dup.md", []byte("second"))
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	got, _ := s.Read("dup.md")
	if string(got) != "first" {
		t.Errorf("existing file overwritten: %q", got)
	}
}

func TestCreateCancelledContext(t *testing.T) {
	s := tempVault(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Create(ctx, "late.md", []byte("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := s.Read("late.md"); err == nil {
		t.Error("file should not exist")
	}
}

func TestNodes(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("Manga/Ch1.md", []byte("a"))
	_ = s.Write("Manhwa/Vol1/p.md", []byte("b"))
	_ = s.Write("root.md", []byte("c"))
	_ = s.Write(".obsidian/app.json", []byte("{}"))
	_ = s.Write(".fansub/data.json", []byte("{}"))

	nodes, err := s.Nodes(context.Background())
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	want := []models.Node{
		models.Folder("Manga"),
		models.Document("Manga/Ch1.md"),
		models.Folder("Manhwa"),
		models.Folder("Manhwa/Vol1"),
		models.Document("Manhwa/Vol1/p.md"),
		models.Document("root.md"),
	}
	if len(nodes) != len(want) {
		t.Fatalf("nodes = %v, want %v", nodes, want)
	}
	for i := range want {
		if nodes[i] != want[i] {
			t.Errorf("nodes[%d] = %v, want %v", i, nodes[i], want[i])
		}
	}
}

func TestNodesEmptyVault(t *testing.T) {
	s := tempVault(t)
	nodes, err := s.Nodes(context.Background())
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("nodes = %v, want none", nodes)
	}
}

func TestList(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("readme.txt", []byte("not md"))
	_ = s.Write(".trash/old.md", []byte("hidden"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.Checksum == "" {
			t.Errorf("missing checksum for %s", it.Path)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); !errors.Is(err, apperr.ErrInvalidPath) {
			t.Errorf("read %q: err = %v, want ErrInvalidPath", p, err)
		}
		if err := s.Write(p, []byte("x")); !errors.Is(err, apperr.ErrInvalidPath) {
			t.Errorf("write %q: err = %v, want ErrInvalidPath", p, err)
		}
		if err := s.Create(context.Background(), p, []byte("x")); !errors.Is(err, apperr.ErrInvalidPath) {
			t.Errorf("create %q: err = %v, want ErrInvalidPath", p, err)
		}
		if _, err := s.List(p); !errors.Is(err, apperr.ErrInvalidPath) {
			t.Errorf("list %q: err = %v, want ErrInvalidPath", p, err)
		}
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("atomic.md", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.md", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".fansub-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestChecksumStable(t *testing.T) {
	if Checksum([]byte("a")) != Checksum([]byte("a")) {
		t.Error("checksum not deterministic")
	}
	if Checksum([]byte("a")) == Checksum([]byte("b")) {
		t.Error("different inputs share a checksum")
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/fansub-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "fansub-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
