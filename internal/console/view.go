// internal/console/view.go
//
// Text rendering for the console session.
// The progress map is two lines, up lane first:
//
//	[ O | O |   ]
//	[   |   | X ]
//
// Passed cells may be coloured with lipgloss when the output supports it.

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/bridge/assets"
	"github.com/robalobadob/bridge/internal/bridge"
)

// View formats messages, maps and results for one writer.
type View struct {
	msgs map[string]string
	pass func(string) string
	fail func(string) string
}

// NewView loads the embedded messages. With color set, O/X cells are styled
// through a renderer bound to w, so non-terminal writers stay plain.
func NewView(w io.Writer, color bool) (*View, error) {
	msgs, err := assets.Messages()
	if err != nil {
		return nil, err
	}
	v := &View{msgs: msgs, pass: plain, fail: plain}
	if color {
		r := lipgloss.NewRenderer(w)
		v.pass = styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("#90EE90")))
		v.fail = styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")))
	}
	return v, nil
}

func styled(s lipgloss.Style) func(string) string {
	return func(str string) string { return s.Render(str) }
}

func plain(s string) string { return s }

// Text returns the message for key.
func (v *View) Text(key string) string { return v.msgs[key] }

// Error formats err with the error prefix.
func (v *View) Error(err error) string {
	return v.msgs["error_prefix"] + " " + err.Error()
}

// Map renders the two lane rows of a snapshot.
func (v *View) Map(s bridge.Snapshot) string {
	return v.row(s.Row(bridge.Up)) + "\n" + v.row(s.Row(bridge.Down))
}

func (v *View) row(cells []bridge.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch c {
		case bridge.CellPass:
			parts[i] = " " + v.pass(string(c)) + " "
		case bridge.CellFail:
			parts[i] = " " + v.fail(string(c)) + " "
		default:
			parts[i] = "   "
		}
	}
	return "[" + strings.Join(parts, "|") + "]"
}

// Result renders the final report: last map, outcome label and try count.
func (v *View) Result(g *bridge.Game) string {
	var b strings.Builder
	b.WriteString(v.msgs["result_title"])
	b.WriteString("\n")
	b.WriteString(v.Map(g.Snapshot()))
	b.WriteString("\n\n")
	label := g.Result()
	if g.Crossed() {
		label = v.pass(label)
	} else {
		label = v.fail(label)
	}
	fmt.Fprintf(&b, v.msgs["result_outcome"]+"\n", label)
	fmt.Fprintf(&b, v.msgs["result_tries"]+"\n", g.TryCount())
	return b.String()
}
