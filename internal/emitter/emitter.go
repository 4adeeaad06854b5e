// Package emitter merges every message source of the program into one
// bounded channel: resolved key input, file system watch events, and
// background task results. The channel holds a single batch so producers
// apply backpressure instead of queueing stale work.
package emitter

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/filestorm/internal/input"
	"github.com/dshills/filestorm/internal/input/keymap"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/log"
	"github.com/dshills/filestorm/internal/message"
	"github.com/dshills/filestorm/internal/register"
	"github.com/dshills/filestorm/internal/task"
	"github.com/dshills/filestorm/internal/watch"
)

// Emitter is the program's single message source.
type Emitter struct {
	messages chan []message.Message
	taskMsgs chan []message.Message

	resolverMu sync.Mutex
	resolver   *input.Resolver

	orchestrator *task.Orchestrator
	watcher      *watch.Service
	screen       tcell.Screen

	suspendReq chan chan struct{}
	resumeReq  chan chan struct{}
	quit       chan struct{}
	quitOnce   sync.Once
}

// New wires an emitter over a screen, a binding tree, a watch service and
// the task options. The orchestrator reports through the emitter's channel.
func New(screen tcell.Screen, tree *keymap.Tree, watcher *watch.Service, reg *register.Register, opts task.Options) *Emitter {
	e := &Emitter{
		messages:   make(chan []message.Message, 1),
		taskMsgs:   make(chan []message.Message, 1),
		resolver:   input.NewResolver(tree),
		watcher:    watcher,
		screen:     screen,
		suspendReq: make(chan chan struct{}),
		resumeReq:  make(chan chan struct{}),
		quit:       make(chan struct{}),
	}
	e.orchestrator = task.New(e.taskMsgs, reg, opts)
	return e
}

// Start begins listening and emits the initial navigation batch first.
func (e *Emitter) Start(initialPath string) {
	events := make(chan tcell.Event, 8)
	go e.screen.ChannelEvents(events, e.quit)
	go e.run(initialPath, events)
}

// Messages is the emitter's output. Batches preserve resolution order.
func (e *Emitter) Messages() <-chan []message.Message {
	return e.messages
}

// SetCurrentMode switches the resolver's binding table.
func (e *Emitter) SetCurrentMode(m mode.Mode) {
	e.resolverMu.Lock()
	e.resolver.SetMode(m)
	e.resolverMu.Unlock()
}

// Run starts a background task.
func (e *Emitter) Run(t task.Task) error {
	return e.orchestrator.Run(t)
}

// Abort cancels a running task with t's identity.
func (e *Emitter) Abort(t task.Task) {
	e.orchestrator.Abort(t)
}

// Watch registers a path with the watch service.
func (e *Emitter) Watch(path string) error {
	return e.watcher.Watch(path)
}

// Unwatch removes a watch registration.
func (e *Emitter) Unwatch(path string) error {
	return e.watcher.Unwatch(path)
}

// Suspend pauses emission until Resume. It returns once the loop has
// acknowledged, so the terminal can be handed to another process. Resolver
// state survives suspension. Suspending twice is harmless.
func (e *Emitter) Suspend() {
	ack := make(chan struct{})
	select {
	case e.suspendReq <- ack:
		<-ack
	case <-e.quit:
	}
}

// Resume continues emission after Suspend.
func (e *Emitter) Resume() {
	ack := make(chan struct{})
	select {
	case e.resumeReq <- ack:
		<-ack
	case <-e.quit:
	}
}

// Shutdown stops the emitter and waits for background tasks per their
// finish policy. It returns the aggregated task failures, if any.
func (e *Emitter) Shutdown() error {
	e.quitOnce.Do(func() { close(e.quit) })
	if err := e.watcher.Close(); err != nil {
		log.WithError(err).Warnf("closing watcher")
	}
	return e.orchestrator.Finishing()
}

// run owns the messages channel: it is the only sender and closes it on
// return so consumers ranging over Messages unblock at shutdown.
func (e *Emitter) run(initialPath string, events <-chan tcell.Event) {
	defer close(e.messages)

	e.emit([]message.Message{message.NavigateToPath{Path: initialPath}})

	watchEvents := e.watcher.Events()
	suspended := false
	for {
		if suspended {
			select {
			case ack := <-e.suspendReq:
				close(ack)
			case ack := <-e.resumeReq:
				suspended = false
				close(ack)
			case <-e.quit:
				return
			}
			continue
		}

		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			e.handleEvent(ev)
		case wev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			if msgs := watch.Translate(wev); len(msgs) > 0 {
				if !e.emit(msgs) {
					return
				}
			}
		case msgs := <-e.taskMsgs:
			if !e.emit(msgs) {
				return
			}
		case ack := <-e.suspendReq:
			suspended = true
			close(ack)
		case ack := <-e.resumeReq:
			close(ack)
		case <-e.quit:
			return
		}
	}
}

func (e *Emitter) emit(msgs []message.Message) bool {
	select {
	case e.messages <- msgs:
		return true
	case <-e.quit:
		return false
	}
}
