package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSaveAndDiscard(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, log.New(io.Discard))

	path, err := store.Save("batch.xlsx", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "batch.xlsx" {
		t.Errorf("expected original filename, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "data" {
		t.Fatalf("unexpected stored content %q: %v", data, err)
	}

	store.Discard(path)
	store.Wait()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected upload dir to be empty, got %d entries", len(entries))
	}
}

func TestSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, log.New(io.Discard))

	path, err := store.Save("../../etc/batch.xlsx", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("upload escaped the store: %s", path)
	}
}

func TestSeparateRequestsDoNotCollide(t *testing.T) {
	store := NewStore(t.TempDir(), log.New(io.Discard))

	a, err := store.Save("batch.xlsx", strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Save("batch.xlsx", strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct paths, got %s twice", a)
	}
}

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.sent {
		return 0, errors.New("disk gone")
	}
	r.sent = true
	return copy(p, "partial"), nil
}

func TestSaveRemovesPartialUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, log.New(io.Discard))

	path, err := store.Save("batch.xlsx", &failingReader{})
	if err == nil {
		t.Fatalf("expected Save to fail, got %s", path)
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("expected reader error to surface, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no leftovers after a failed save, got %d entries", len(entries))
	}
}
