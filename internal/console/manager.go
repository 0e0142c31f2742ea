// internal/console/manager.go
//
// Line-oriented driver for one bridge session over a reader/writer pair.
// Flow:
//   1. Ask for the bridge length and build the bridge.
//   2. Ask for lanes, printing the map after each move, until the attempt
//      crosses or fails.
//   3. After a failure ask retry/quit; retry goes back to 2.
//   4. Print the final result.
//
// Invalid input prints an [ERROR] line. By default that ends the session
// and Run returns the validation error; with Reprompt the same question is
// asked again.
//
// Lines are read on a separate goroutine so a canceled context ends Run
// even while a prompt is waiting for input.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bridge/internal/bridge"
)

// Options configures a Manager.
type Options struct {
	Generator bridge.NumberGenerator // required
	Reprompt  bool                   // ask again after invalid input
	Color     bool                   // style O/X cells
}

// Manager drives the read -> validate -> play -> print loop.
type Manager struct {
	in       *bufio.Reader
	out      io.Writer
	view     *View
	gen      bridge.NumberGenerator
	reprompt bool

	game  *bridge.Game
	lines chan line
	done  chan struct{}
}

// line is one input line or the error that ended input.
type line struct {
	text string
	err  error
}

// New binds a Manager to in/out.
func New(in io.Reader, out io.Writer, opts Options) (*Manager, error) {
	if opts.Generator == nil {
		return nil, errors.New("console: nil number generator")
	}
	view, err := NewView(out, opts.Color)
	if err != nil {
		return nil, err
	}
	return &Manager{
		in:       bufio.NewReader(in),
		out:      out,
		view:     view,
		gen:      opts.Generator,
		reprompt: opts.Reprompt,
	}, nil
}

// Game returns the session's game, nil before setup.
func (m *Manager) Game() *bridge.Game { return m.game }

// Run plays one full session. It returns ctx.Err() once ctx is canceled.
func (m *Manager) Run(ctx context.Context) error {
	m.lines = make(chan line)
	m.done = make(chan struct{})
	defer close(m.done)
	go m.readLines()

	m.println(m.view.Text("start"))
	m.println("")
	if err := m.setUp(ctx); err != nil {
		return err
	}
	for {
		if err := m.play(ctx); err != nil {
			return err
		}
		again, err := m.keepGoing(ctx)
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}
	m.print(m.view.Result(m.game))
	log.Debug().Str("game", m.game.ID).Str("result", m.game.Result()).Int("tries", m.game.TryCount()).Msg("session ended")
	return nil
}

func (m *Manager) setUp(ctx context.Context) error {
	length, err := ask(ctx, m, m.view.Text("ask_length"), bridge.ParseLength)
	if err != nil {
		return err
	}
	b, err := bridge.Build(length, m.gen)
	if err != nil {
		return err
	}
	m.game = bridge.New(b)
	m.println("")
	log.Debug().Str("game", m.game.ID).Int("length", length).Msg("bridge built")
	return nil
}

// play runs moves until the current attempt crosses or fails.
func (m *Manager) play(ctx context.Context) error {
	for !m.game.Dead() && !m.game.Crossed() {
		lane, err := ask(ctx, m, m.view.Text("ask_move"), bridge.ParseDirection)
		if err != nil {
			return err
		}
		snap, err := m.game.Move(lane)
		if err != nil {
			return err
		}
		m.println(m.view.Map(snap))
		m.println("")
		log.Debug().Str("game", m.game.ID).Stringer("lane", lane).Stringer("state", snap.State).Msg("move")
	}
	return nil
}

// keepGoing asks retry/quit after a failure. A crossed game never asks.
func (m *Manager) keepGoing(ctx context.Context) (bool, error) {
	if m.game.Crossed() {
		return false, nil
	}
	cmd, err := ask(ctx, m, m.view.Text("ask_retry"), bridge.ParseCommand)
	if err != nil {
		return false, err
	}
	again, err := m.game.Retry(cmd)
	if err != nil {
		return false, err
	}
	if again {
		log.Debug().Str("game", m.game.ID).Int("tries", m.game.TryCount()).Msg("retry")
	}
	return again, nil
}

// ask prints prompt, reads one line and parses it.
func ask[T any](ctx context.Context, m *Manager, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		m.println(prompt)
		text, err := m.readLine(ctx)
		if err != nil {
			return zero, err
		}
		v, err := parse(text)
		if err == nil {
			return v, nil
		}
		m.println(m.view.Error(err))
		if !m.reprompt {
			return zero, err
		}
	}
}

// readLine waits for the next line or for ctx to be canceled. A line that
// arrives together with a cancellation is dropped.
func (m *Manager) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-m.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return l.text, l.err
	}
}

// readLines feeds m.lines until input ends or Run returns. Lines have no
// length limit, so oversized input still reaches validation.
func (m *Manager) readLines() {
	for {
		s, err := m.in.ReadString('\n')
		l := line{text: strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")}
		switch {
		case err == io.EOF && s == "":
			l.err = io.ErrUnexpectedEOF
		case err != nil && err != io.EOF:
			l.err = err
		}
		select {
		case m.lines <- l:
		case <-m.done:
			return
		}
		if l.err != nil {
			return
		}
	}
}

func (m *Manager) println(s string) { fmt.Fprintln(m.out, s) }

func (m *Manager) print(s string) { fmt.Fprint(m.out, s) }
