// internal/bridge/game.go
//
// State machine for a single bridge crossing session.
// Responsibilities:
//   - Own the bridge, the current attempt history and the try counter.
//   - Apply moves: setup/in_progress -> in_progress | crossed | failed.
//   - Retry from failed (history cleared, tries+1) or quit (session over).
//
// Notes:
//   - Inputs arrive as Lane/Command values; raw text is parsed in validate.go.
//   - Calling Move or Retry out of turn returns ErrGameOver / ErrNotFailed
//     and leaves the state untouched.
package bridge

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

var (
	ErrGameOver  = errors.New("no move allowed: attempt is over")
	ErrNotFailed = errors.New("retry is only allowed after a failed attempt")
)

// Result labels for an ended session.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Game holds the state of one play session.
type Game struct {
	ID string // random hex identifier

	bridge  Bridge
	history []Step
	state   State
	tries   int
	quit    bool
}

// New starts a session on b. The first attempt counts as try 1.
func New(b Bridge) *Game {
	return &Game{
		ID:      randomID(),
		bridge:  b,
		history: make([]Step, 0, b.Len()),
		state:   StateSetup,
		tries:   1,
	}
}

// Move steps onto lane at the current position and returns a copy of the
// attempt history. A correct step on the last position crosses the bridge
// within the same call.
func (g *Game) Move(lane Lane) (Snapshot, error) {
	pos := len(g.history)
	if g.quit || g.state == StateFailed || g.state == StateCrossed || pos >= g.bridge.Len() {
		return g.Snapshot(), ErrGameOver
	}
	ok := g.bridge.At(pos) == lane
	g.history = append(g.history, Step{Position: pos, Lane: lane, Correct: ok})

	switch {
	case !ok:
		g.state = StateFailed
	case len(g.history) == g.bridge.Len():
		g.state = StateCrossed
	default:
		g.state = StateInProgress
	}
	return g.Snapshot(), nil
}

// Retry applies the player's decision after a failure.
// Retry resets the attempt and returns true; Quit ends the session and
// returns false.
func (g *Game) Retry(cmd Command) (bool, error) {
	if g.quit || g.state != StateFailed {
		return false, ErrNotFailed
	}
	if cmd == Quit {
		g.quit = true
		return false, nil
	}
	g.tries++
	g.history = g.history[:0]
	g.state = StateSetup
	return true, nil
}

// Crossed reports whether the current attempt reached the far side.
func (g *Game) Crossed() bool { return g.state == StateCrossed }

// Dead reports whether the last move of the current attempt was wrong.
func (g *Game) Dead() bool { return g.state == StateFailed }

// Ended reports whether the session is over, by crossing or by quitting.
func (g *Game) Ended() bool { return g.quit || g.state == StateCrossed }

// TryCount returns the number of attempts started, including the first.
func (g *Game) TryCount() int { return g.tries }

// State returns the current attempt state.
func (g *Game) State() State { return g.state }

// Position is the index of the next position to step on.
func (g *Game) Position() int {
	if g.state == StateFailed {
		return len(g.history) - 1
	}
	return len(g.history)
}

// Len returns the bridge length.
func (g *Game) Len() int { return g.bridge.Len() }

// Result classifies the session: success once crossed, failure otherwise.
func (g *Game) Result() string {
	if g.state == StateCrossed {
		return ResultSuccess
	}
	return ResultFailure
}

// Snapshot copies the attempt history for rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Steps: append([]Step(nil), g.history...),
		State: g.state,
		Tries: g.tries,
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
