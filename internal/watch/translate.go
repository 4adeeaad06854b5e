package watch

import (
	"github.com/dshills/filestorm/internal/log"
	"github.com/dshills/filestorm/internal/message"
)

// Translate turns a watch event into the messages the view consumes.
// Metadata changes and rename events without both names resolve to nothing.
func Translate(ev Event) []message.Message {
	switch ev.Op {
	case OpCreate:
		if len(ev.Paths) == 0 {
			return nil
		}
		return []message.Message{message.PathsAdded{Paths: ev.Paths}}

	case OpWrite:
		if len(ev.Paths) == 0 {
			return nil
		}
		return []message.Message{message.PathsWriteFinished{Paths: ev.Paths}}

	case OpRemove:
		msgs := make([]message.Message, 0, len(ev.Paths))
		for _, path := range ev.Paths {
			msgs = append(msgs, message.PathRemoved{Path: path})
		}
		return msgs

	case OpRename:
		// A rename is a removal of the old name and an addition of the
		// new one, in that order. With any other path count the event
		// is not actionable.
		if len(ev.Paths) != 2 {
			log.Debugf("dropping rename event with %d path(s)", len(ev.Paths))
			return nil
		}
		return []message.Message{
			message.PathRemoved{Path: ev.Paths[0]},
			message.PathsAdded{Paths: []string{ev.Paths[1]}},
		}

	case OpChmod:
		return nil

	default:
		return nil
	}
}
