// internal/bridge/types.go
//
// Core type definitions for the bridge crossing game.
// Defines:
//   - Lane: one of the two stepping lanes (up/down).
//   - Command: the player's answer after a failed attempt (retry/quit).
//   - Bridge: the immutable sequence of correct lanes.
//   - Step, Cell, Snapshot: attempt history and its rendering view.
//   - State: the per-attempt state machine position.

package bridge

// Lane is a stepping lane at a bridge position.
type Lane int

const (
	Down Lane = iota
	Up
)

// String returns the console token for the lane ("U"/"D").
func (l Lane) String() string {
	if l == Up {
		return "U"
	}
	return "D"
}

// Command is the decision taken after a failed attempt.
type Command int

const (
	Retry Command = iota
	Quit
)

func (c Command) String() string {
	if c == Quit {
		return "Q"
	}
	return "R"
}

// Bridge is the fixed sequence of correct lanes for one session.
// The zero value is an empty bridge; use Build to make a playable one.
type Bridge struct {
	lanes []Lane
}

// NewBridge copies lanes into a Bridge.
func NewBridge(lanes ...Lane) Bridge {
	return Bridge{lanes: append([]Lane(nil), lanes...)}
}

// Len returns the number of positions.
func (b Bridge) Len() int { return len(b.lanes) }

// At returns the correct lane at position i.
func (b Bridge) At(i int) Lane { return b.lanes[i] }

// Lanes returns a copy of the markers.
func (b Bridge) Lanes() []Lane { return append([]Lane(nil), b.lanes...) }

// Step records one move of the current attempt.
type Step struct {
	Position int  // zero-based bridge index
	Lane     Lane // lane the player chose
	Correct  bool
}

// Cell is one rendered square of the progress map.
type Cell string

const (
	CellPass  Cell = "O"
	CellFail  Cell = "X"
	CellBlank Cell = " "
)

// State is where the current attempt stands.
type State int

const (
	StateSetup      State = iota // bridge assigned, no moves yet
	StateInProgress              // some moves made, all correct
	StateFailed                  // last move was wrong
	StateCrossed                 // every position passed
)

// String reports the coarse outcome name: in_progress, crossed or failed.
func (s State) String() string {
	switch s {
	case StateFailed:
		return "failed"
	case StateCrossed:
		return "crossed"
	default:
		return "in_progress"
	}
}

// Snapshot is an immutable copy of the attempt history, safe to hand to
// renderers while the game keeps mutating.
type Snapshot struct {
	Steps []Step
	State State
	Tries int
}

// Row returns the cells of one lane, one per recorded position.
func (s Snapshot) Row(lane Lane) []Cell {
	row := make([]Cell, len(s.Steps))
	for i, st := range s.Steps {
		switch {
		case st.Lane != lane:
			row[i] = CellBlank
		case st.Correct:
			row[i] = CellPass
		default:
			row[i] = CellFail
		}
	}
	return row
}
