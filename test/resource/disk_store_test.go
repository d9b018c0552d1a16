package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/syncroapp/syncro-backend/internal/resource/storage"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path, err := store.Save("sprint report.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := filepath.Base(path)
	if strings.Contains(base, " ") {
		t.Fatalf("stored name must not contain spaces: %q", base)
	}
	if !strings.HasSuffix(base, "-sprint_report.pdf") {
		t.Fatalf("unexpected stored name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected contents %q", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected file to be gone")
	}
}

func TestDiskStoreRemoveMissingFile(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.Remove(filepath.Join(t.TempDir(), "never-existed.pdf")); err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Fatalf("empty path must be a no-op: %v", err)
	}
}

func TestDiskStoreStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("stored file escaped the upload dir: %q", path)
	}
}
