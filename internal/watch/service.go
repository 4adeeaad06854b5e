// Package watch reports file system changes for directories the file
// manager is displaying. It wraps fsnotify and normalizes its events into a
// small operation set the rest of the program understands.
package watch

import (
	"errors"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/filestorm/internal/log"
)

// Op is a normalized file system operation.
type Op uint8

const (
	// OpCreate reports a new path.
	OpCreate Op = iota

	// OpWrite reports finished writes to a path.
	OpWrite

	// OpRemove reports a deleted path.
	OpRemove

	// OpRename reports a moved path. When both names are known Paths
	// holds the old path followed by the new one.
	OpRename

	// OpChmod reports a metadata change.
	OpChmod
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	case OpChmod:
		return "chmod"
	default:
		return "unknown"
	}
}

// Event is one observed change.
type Event struct {
	Op    Op
	Paths []string
}

// ErrNotWatched indicates Unwatch was called for an unregistered path.
var ErrNotWatched = errors.New("watch: path is not watched")

// Service owns the fsnotify watcher and the registration set.
type Service struct {
	watcher *fsnotify.Watcher
	events  chan Event

	done chan struct{}

	mu      sync.Mutex
	watched map[string]struct{}
	closed  bool
}

// New starts the watch service.
func New() (*Service, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &Service{
		watcher: watcher,
		events:  make(chan Event),
		done:    make(chan struct{}),
		watched: make(map[string]struct{}),
	}
	go s.loop()
	return s, nil
}

// Watch registers a path. Watching an already watched path is a no-op.
func (s *Service) Watch(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watched[path]; ok {
		return nil
	}
	if err := s.watcher.Add(path); err != nil {
		return err
	}
	s.watched[path] = struct{}{}
	return nil
}

// Unwatch removes a registration.
func (s *Service) Unwatch(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watched[path]; !ok {
		return ErrNotWatched
	}
	delete(s.watched, path)
	return s.watcher.Remove(path)
}

// Events delivers normalized change events. The channel closes when the
// service closes.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Close stops the watcher and closes the event channel.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
	return s.watcher.Close()
}

func (s *Service) loop() {
	defer close(s.events)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			// The consumer may have stopped reading before Close.
			select {
			case s.events <- normalize(ev):
			case <-s.done:
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warnf("watcher error")
		}
	}
}

// normalize maps an fsnotify event to an Op. fsnotify can set several bits
// on one event; the most significant one wins.
func normalize(ev fsnotify.Event) Event {
	e := Event{Paths: []string{ev.Name}}
	switch {
	case ev.Op.Has(fsnotify.Create):
		e.Op = OpCreate
	case ev.Op.Has(fsnotify.Remove):
		e.Op = OpRemove
	case ev.Op.Has(fsnotify.Rename):
		e.Op = OpRename
	case ev.Op.Has(fsnotify.Write):
		e.Op = OpWrite
	default:
		e.Op = OpChmod
	}
	return e
}
