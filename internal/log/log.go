// Package log provides logging for filestorm. Because a TUI owns the
// terminal, log output always goes to a file, never to stdout/stderr.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Init routes log output to the given file, creating parent directories as
// needed. An empty path leaves logging discarded.
func Init(path string, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logger.SetOutput(f)
	return nil
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// WithField returns an entry with a single structured field attached.
func WithField(key string, value any) *logrus.Entry {
	return logger.WithField(key, value)
}

// WithError returns an entry with an error field attached.
func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

func Infof(format string, args ...any) { logger.Infof(format, args...) }

func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
