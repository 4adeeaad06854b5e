package task

import (
	"context"
	"errors"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/semaphore"

	"github.com/dshills/filestorm/internal/log"
	"github.com/dshills/filestorm/internal/message"
	"github.com/dshills/filestorm/internal/register"
)

const (
	defaultBatchSize    = 100
	defaultPreviewLines = 200
	defaultConcurrency  = 8
)

// Options tune the orchestrator. Zero values fall back to defaults.
type Options struct {
	// BatchSize is the initial enumeration batch threshold.
	BatchSize int

	// Ignore holds glob patterns for names excluded from enumeration.
	Ignore []string

	// PreviewLines caps the number of lines a preview loads.
	PreviewLines int

	// Concurrency caps the number of tasks running at once.
	Concurrency int
}

// Orchestrator runs tasks in the background, keyed by identity. Starting a
// task cancels a running task with the same identity before replacing it.
type Orchestrator struct {
	out          chan<- []message.Message
	register     *register.Register
	batchSize    int
	ignore       []glob.Glob
	previewLines int
	sem          *semaphore.Weighted

	mu        sync.Mutex
	running   map[string]*handle
	errs      []error
	closed    bool
	finishing chan struct{}
	wg        sync.WaitGroup
}

type handle struct {
	task   Task
	cancel context.CancelFunc
}

// New creates an orchestrator that reports messages on out. Invalid ignore
// patterns are logged and skipped.
func New(out chan<- []message.Message, reg *register.Register, opts Options) *Orchestrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = defaultPreviewLines
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	var ignore []glob.Glob
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			log.WithError(err).Warnf("skipping ignore pattern %q", pattern)
			continue
		}
		ignore = append(ignore, g)
	}

	return &Orchestrator{
		out:          out,
		register:     reg,
		batchSize:    opts.BatchSize,
		ignore:       ignore,
		previewLines: opts.PreviewLines,
		sem:          semaphore.NewWeighted(int64(opts.Concurrency)),
		running:      make(map[string]*handle),
		finishing:    make(chan struct{}),
	}
}

// Run starts t in the background. A running task with the same identity is
// cancelled first. Run fails only after Finishing has been called.
func (o *Orchestrator) Run(t Task) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrOrchestratorClosed
	}

	id := t.Identity()
	if prev, ok := o.running[id]; ok {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{task: t, cancel: cancel}
	o.running[id] = h
	o.wg.Add(1)
	o.mu.Unlock()

	go o.runTask(ctx, id, h)
	return nil
}

// Abort cancels and untracks the running task with t's identity, if any.
func (o *Orchestrator) Abort(t Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := t.Identity()
	if h, ok := o.running[id]; ok {
		h.cancel()
		delete(o.running, id)
	}
}

// Finishing closes the orchestrator. Tasks that only feed the screen are
// cancelled; file system tasks run to completion. It returns the session's
// accumulated failures, cancellations excluded.
func (o *Orchestrator) Finishing() error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.finishing)
		for _, h := range o.running {
			if abortOnFinish(h.task) {
				h.cancel()
			}
		}
	}
	o.mu.Unlock()

	o.wg.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.errs) == 0 {
		return nil
	}
	errs := make([]error, len(o.errs))
	copy(errs, o.errs)
	return &AggregateError{Errs: errs}
}

func (o *Orchestrator) runTask(ctx context.Context, id string, h *handle) {
	defer o.wg.Done()
	defer h.cancel()

	err := o.sem.Acquire(ctx, 1)
	if err == nil {
		err = o.execute(ctx, h.task)
		o.sem.Release(1)
	}

	o.mu.Lock()
	if o.running[id] == h {
		delete(o.running, id)
	}
	o.mu.Unlock()

	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	opErr := &OperationError{Task: Name(h.task), Err: err}
	log.WithError(opErr).Errorf("task failed")

	o.mu.Lock()
	o.errs = append(o.errs, opErr)
	o.mu.Unlock()

	// Report the failure to the screen unless the session is ending. The
	// non-blocking attempt comes first so a failure raced by Finishing
	// still reaches the channel when there is room.
	report := []message.Message{message.TaskError{Task: Name(h.task), Err: opErr}}
	select {
	case o.out <- report:
		return
	default:
	}
	select {
	case o.out <- report:
	case <-o.finishing:
	}
}

// send delivers messages from a running task, giving up on cancellation.
func (o *Orchestrator) send(ctx context.Context, msgs []message.Message) bool {
	if len(msgs) == 0 {
		return true
	}
	select {
	case o.out <- msgs:
		return true
	case <-ctx.Done():
		return false
	}
}
