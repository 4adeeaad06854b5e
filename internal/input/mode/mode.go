// Package mode defines the modal contexts that select which binding table
// the key resolver consults.
package mode

import "fmt"

// Mode is a modal input context.
type Mode int

const (
	// Navigation is the default mode for moving through directories.
	Navigation Mode = iota

	// Normal is the vim-like normal mode for editing the entry buffer.
	Normal

	// Insert accepts literal text input.
	Insert

	// Command accepts literal text input for the command line.
	Command
)

// Default returns the mode active at session start.
func Default() Mode {
	return Navigation
}

// IsTextInput reports whether unmatched printable keys in this mode are
// inserted as literal text instead of being discarded.
func (m Mode) IsTextInput() bool {
	return m == Insert || m == Command
}

// String returns the mode name as shown in a status line.
func (m Mode) String() string {
	switch m {
	case Navigation:
		return "navigation"
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Command:
		return "command"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Parse returns the mode for a given name.
func Parse(name string) (Mode, error) {
	switch name {
	case "navigation":
		return Navigation, nil
	case "normal":
		return Normal, nil
	case "insert":
		return Insert, nil
	case "command":
		return Command, nil
	default:
		return Navigation, fmt.Errorf("unknown mode: %q", name)
	}
}

// All lists every mode.
func All() []Mode {
	return []Mode{Navigation, Normal, Insert, Command}
}
