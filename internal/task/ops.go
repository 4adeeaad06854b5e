package task

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dshills/filestorm/internal/history"
	"github.com/dshills/filestorm/internal/log"
	"github.com/dshills/filestorm/internal/message"
)

// execute dispatches a task to its operation. Every branch checks the
// context before doing work so aborted tasks stop promptly.
func (o *Orchestrator) execute(ctx context.Context, t Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch t := t.(type) {
	case AddPath:
		return addPath(t.Path)
	case DeletePath:
		return deletePath(t.Path)
	case RenamePath:
		return renamePath(t.Old, t.New)
	case EnumerateDirectory:
		return o.enumerate(ctx, t.Path)
	case LoadPreview:
		return o.preview(ctx, t.Path)
	case EmitMessages:
		if !o.send(ctx, t.Messages) {
			return ctx.Err()
		}
		return nil
	case SaveHistory:
		return saveHistory(t.History)
	case OptimizeHistory:
		path, err := history.Path()
		if err != nil {
			return err
		}
		return history.Optimize(path)
	case YankPath:
		return o.register.Yank(t.Entry)
	case TrashPath:
		return o.register.Trash(t.Entry)
	case RestorePath:
		return o.register.Restore(t.Entry, t.Path)
	case DeleteRegisterEntry:
		return o.register.Delete(t.Entry)
	default:
		return fmt.Errorf("task: unknown task %T", t)
	}
}

// addPath creates a directory when path ends with a separator, otherwise an
// empty file. Existing targets are rejected.
func addPath(path string) error {
	if _, err := os.Stat(strings.TrimRight(path, string(os.PathSeparator))); err == nil {
		return fmt.Errorf("%w: %s already exists", ErrInvalidTarget, path)
	}

	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// deletePath removes path and anything under it. A missing target is an
// error rather than a silent success.
func deletePath(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, path)
	}
	return os.RemoveAll(path)
}

func renamePath(old, newPath string) error {
	if _, err := os.Lstat(old); err != nil {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, old)
	}
	return os.Rename(old, newPath)
}

// saveHistory appends the session's visited paths and then compacts the
// cache. A failed append still compacts so dead paths get dropped.
func saveHistory(h *history.History) error {
	path, err := history.Path()
	if err != nil {
		return err
	}
	if err := history.Save(h, path); err != nil {
		log.WithError(err).Warnf("saving history")
	}
	return history.Optimize(path)
}

// enumerate streams a directory's entries. Partial results are reported
// whenever the accumulated set crosses the batch threshold, which doubles
// after each report so huge directories do not flood the channel.
func (o *Orchestrator) enumerate(ctx context.Context, path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()

	var entries []message.DirEntry
	threshold := o.batchSize

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk, err := dir.ReadDir(o.batchSize)
		for _, de := range chunk {
			if o.ignored(de.Name()) {
				continue
			}
			kind := message.KindFile
			if de.IsDir() {
				kind = message.KindDirectory
			}
			entries = append(entries, message.DirEntry{Kind: kind, Name: de.Name()})
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if len(entries) >= threshold {
			sortEntries(entries)
			batch := make([]message.DirEntry, len(entries))
			copy(batch, entries)
			if !o.send(ctx, []message.Message{message.EnumerationChanged{Path: path, Entries: batch}}) {
				return ctx.Err()
			}
			threshold *= 2
		}
	}

	sortEntries(entries)
	final := []message.Message{
		message.EnumerationChanged{Path: path, Entries: entries},
		message.EnumerationFinished{Path: path},
	}
	if !o.send(ctx, final) {
		return ctx.Err()
	}
	return nil
}

func sortEntries(entries []message.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == message.KindDirectory
		}
		return entries[i].Name < entries[j].Name
	})
}

func (o *Orchestrator) ignored(name string) bool {
	for _, g := range o.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// preview loads the head of a file when its content is text. Binary files
// produce no message and no error.
func (o *Orchestrator) preview(ctx context.Context, path string) error {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mime.String(), "text/") && !mime.Is("application/json") {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < o.previewLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.send(ctx, []message.Message{message.PreviewLoaded{Path: path, Lines: lines}}) {
		return ctx.Err()
	}
	return nil
}
