// Package register stores yanked and trashed paths as zip archives in the
// user cache directory. An index.json next to the archives maps entry ids to
// their original paths so restores and deletes can resolve the archive.
package register

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrEntryNotFound indicates the indexed archive is missing.
var ErrEntryNotFound = errors.New("register entry not found")

// Entry identifies one archived path in the register.
type Entry struct {
	// ID is the archive base name. It never contains dots so it can be
	// used directly as a JSON index key.
	ID string

	// Path is the original absolute path the entry was taken from.
	Path string
}

// NewEntry builds an entry id from the path's base name and a timestamp.
func NewEntry(path string) Entry {
	base := strings.ReplaceAll(filepath.Base(path), ".", "_")
	return Entry{
		ID:   fmt.Sprintf("%s_%d", base, time.Now().UnixNano()),
		Path: path,
	}
}

// Register is a directory of zip archives with a JSON index.
type Register struct {
	dir string
}

// Open returns the register rooted at dir, creating it if needed.
func Open(dir string) (*Register, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Register{dir: dir}, nil
}

// OpenDefault opens the register under the user cache directory.
func OpenDefault() (*Register, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(cacheDir, "filestorm", "register"))
}

func (r *Register) archivePath(id string) string {
	return filepath.Join(r.dir, id+".zip")
}

func (r *Register) indexPath() string {
	return filepath.Join(r.dir, "index.json")
}

// Yank archives the entry's path without touching the original.
func (r *Register) Yank(entry Entry) error {
	if err := r.archive(entry); err != nil {
		return err
	}
	return r.indexSet(entry)
}

// Trash archives the entry's path and removes the original.
func (r *Register) Trash(entry Entry) error {
	if err := r.archive(entry); err != nil {
		return err
	}
	if err := r.indexSet(entry); err != nil {
		return err
	}
	return os.RemoveAll(entry.Path)
}

// Restore unpacks the entry's archive to target. The entry stays in the
// register so a restore can be repeated.
func (r *Register) Restore(entry Entry, target string) error {
	zr, err := zip.OpenReader(r.archivePath(entry.ID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, entry.ID)
		}
		return err
	}
	defer zr.Close()

	for _, file := range zr.File {
		if err := unpackFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

// Delete drops the entry's archive and its index record.
func (r *Register) Delete(entry Entry) error {
	if err := os.Remove(r.archivePath(entry.ID)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return r.indexDelete(entry)
}

// Entries lists the indexed entries, newest ids last.
func (r *Register) Entries() ([]Entry, error) {
	raw, err := os.ReadFile(r.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	gjson.ParseBytes(raw).ForEach(func(id, path gjson.Result) bool {
		entries = append(entries, Entry{ID: id.String(), Path: path.String()})
		return true
	})
	return entries, nil
}

func (r *Register) indexSet(entry Entry) error {
	raw, err := os.ReadFile(r.indexPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	updated, err := sjson.SetBytes(raw, entry.ID, entry.Path)
	if err != nil {
		return err
	}
	return os.WriteFile(r.indexPath(), updated, 0o644)
}

func (r *Register) indexDelete(entry Entry) error {
	raw, err := os.ReadFile(r.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	updated, err := sjson.DeleteBytes(raw, entry.ID)
	if err != nil {
		return err
	}
	return os.WriteFile(r.indexPath(), updated, 0o644)
}

// archive writes a zip of entry.Path. Directories are walked recursively
// with archive member names relative to the path's parent.
func (r *Register) archive(entry Entry) error {
	out, err := os.Create(r.archivePath(entry.ID))
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	base := filepath.Dir(entry.Path)

	err = filepath.Walk(entry.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if info.IsDir() {
			_, err := zw.Create(name + "/")
			return err
		}
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func unpackFile(file *zip.File, target string) error {
	dest := filepath.Join(target, filepath.FromSlash(file.Name))
	if !strings.HasPrefix(dest, filepath.Clean(target)+string(os.PathSeparator)) {
		return fmt.Errorf("archive member escapes target: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
