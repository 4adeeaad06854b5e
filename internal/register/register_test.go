package register

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewEntryIDHasNoDots(t *testing.T) {
	entry := NewEntry("/tmp/archive.tar.gz")
	if strings.Contains(entry.ID, ".") {
		t.Errorf("entry id %q contains a dot", entry.ID)
	}
	if entry.Path != "/tmp/archive.tar.gz" {
		t.Errorf("entry path = %q", entry.Path)
	}
}

func TestYankAndRestoreFile(t *testing.T) {
	dir := t.TempDir()
	reg, err := Open(filepath.Join(dir, "register"))
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(src, []byte("contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry := NewEntry(src)
	if err := reg.Yank(entry); err != nil {
		t.Fatalf("Yank() error = %v", err)
	}

	// The original stays put after a yank.
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("yanked original missing: %v", err)
	}

	target := filepath.Join(dir, "restored")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := reg.Restore(entry, target); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, "note.txt"))
	if err != nil {
		t.Fatalf("restored file missing: %v", err)
	}
	if string(data) != "contents" {
		t.Errorf("restored contents = %q", data)
	}
}

func TestTrashRemovesOriginal(t *testing.T) {
	dir := t.TempDir()
	reg, err := Open(filepath.Join(dir, "register"))
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "doomed")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry := NewEntry(src)
	if err := reg.Trash(entry); err != nil {
		t.Fatalf("Trash() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("trashed original still present: %v", err)
	}

	target := filepath.Join(dir, "restored")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := reg.Restore(entry, target); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(target, "doomed", "nested", "f.txt"))
	if err != nil {
		t.Fatalf("restored tree incomplete: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("restored contents = %q", data)
	}
}

func TestEntriesListsIndex(t *testing.T) {
	dir := t.TempDir()
	reg, err := Open(filepath.Join(dir, "register"))
	if err != nil {
		t.Fatal(err)
	}

	if entries, err := reg.Entries(); err != nil || len(entries) != 0 {
		t.Fatalf("empty register: entries = %+v, err = %v", entries, err)
	}

	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry := NewEntry(src)
	if err := reg.Yank(entry); err != nil {
		t.Fatal(err)
	}

	entries, err := reg.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID || entries[0].Path != src {
		t.Errorf("entries = %+v, want [%+v]", entries, entry)
	}
}

func TestDeleteDropsEntry(t *testing.T) {
	dir := t.TempDir()
	reg, err := Open(filepath.Join(dir, "register"))
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry := NewEntry(src)
	if err := reg.Yank(entry); err != nil {
		t.Fatal(err)
	}

	if err := reg.Delete(entry); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	entries, err := reg.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after delete = %+v", entries)
	}

	if err := reg.Restore(entry, dir); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Restore() after delete = %v, want ErrEntryNotFound", err)
	}
}

func TestRestoreUnknownEntry(t *testing.T) {
	reg, err := Open(filepath.Join(t.TempDir(), "register"))
	if err != nil {
		t.Fatal(err)
	}
	err = reg.Restore(Entry{ID: "missing_1"}, t.TempDir())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Restore() = %v, want ErrEntryNotFound", err)
	}
}
