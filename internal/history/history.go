// Package history persists the directory history cache: one CSV record per
// visited path, "changed_at,path", under the user cache directory. Entries
// loaded from disk and entries added during the session are tracked
// separately so saving appends only new entries while optimizing rewrites
// the whole file.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// State marks where a history entry came from.
type State int

const (
	// StateLoaded marks entries read from the cache file.
	StateLoaded State = iota

	// StateAdded marks entries recorded during this session.
	StateAdded
)

// Entry is one visited path.
type Entry struct {
	ChangedAt uint64
	State     State
}

// History is the in-memory history model keyed by absolute path.
type History struct {
	Entries map[string]Entry
}

// New creates an empty history.
func New() *History {
	return &History{Entries: make(map[string]Entry)}
}

// Add records a path visit with the current timestamp.
func (h *History) Add(path string) {
	h.Entries[path] = Entry{
		ChangedAt: uint64(time.Now().Unix()),
		State:     StateAdded,
	}
}

// ErrLoadFailed indicates the cache file is missing or unreadable.
var ErrLoadFailed = errors.New("loading history failed")

// Path returns the location of the history cache file.
func Path() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return filepath.Join(cacheDir, "filestorm", "history"), nil
}

// Load reads the cache file into h, marking every entry StateLoaded.
// Malformed records are skipped.
func Load(h *History, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		changedAt, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		h.Entries[record[1]] = Entry{ChangedAt: changedAt, State: StateLoaded}
	}
	return nil
}

// Save appends the session's added entries to the cache file. Entries whose
// path no longer exists are dropped.
func Save(h *History, path string) error {
	return saveFiltered(h, path, StateAdded, false)
}

// Optimize rewrites the cache file from its own contents, dropping records
// whose path has disappeared. It bounds unlimited growth of the
// append-only cache.
func Optimize(path string) error {
	h := New()
	if err := Load(h, path); err != nil {
		return err
	}
	return saveFiltered(h, path, StateLoaded, true)
}

func saveFiltered(h *History, path string, filter State, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	for entryPath, entry := range h.Entries {
		if entry.State != filter {
			continue
		}
		if _, err := os.Stat(entryPath); err != nil {
			continue
		}
		if err := writer.Write([]string{strconv.FormatUint(entry.ChangedAt, 10), entryPath}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
