package emitter

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/message"
)

// handleEvent resolves one terminal event into messages and emits them.
// Key events go through the resolver; the pending chord is reported as a
// KeySequenceChanged whenever it changes.
func (e *Emitter) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := key.FromTcell(ev)
		if !ok {
			return
		}

		e.resolverMu.Lock()
		before := e.resolver.Pending()
		msgs := e.resolver.AddAndResolve(k)
		after := e.resolver.Pending()
		e.resolverMu.Unlock()

		if before != after {
			msgs = append(msgs, message.KeySequenceChanged{Sequence: after})
		}
		if len(msgs) > 0 {
			e.emit(msgs)
		}

	case *tcell.EventResize:
		width, height := ev.Size()
		e.emit([]message.Message{message.Resize{Width: width, Height: height}})
	}
}
