// internal/bridge/builder.go
//
// Bridge construction from an injected 0/1 source.

package bridge

import (
	"errors"
	"fmt"
)

// ErrGeneratorRange is returned when a NumberGenerator yields a value other
// than 0 or 1.
var ErrGeneratorRange = errors.New("number generator must yield 0 or 1")

// NumberGenerator produces the correct lane for one position:
// 1 means Up, 0 means Down.
type NumberGenerator interface {
	Generate() int
}

// GeneratorFunc adapts a plain function to NumberGenerator.
type GeneratorFunc func() int

func (f GeneratorFunc) Generate() int { return f() }

// Build asks gen once per position, in order, and maps 1 to Up and 0 to Down.
// length is expected to have passed ParseLength already.
func Build(length int, gen NumberGenerator) (Bridge, error) {
	if length < 0 {
		length = 0
	}
	lanes := make([]Lane, 0, length)
	for i := 0; i < length; i++ {
		switch n := gen.Generate(); n {
		case 1:
			lanes = append(lanes, Up)
		case 0:
			lanes = append(lanes, Down)
		default:
			return Bridge{}, fmt.Errorf("%w: got %d at position %d", ErrGeneratorRange, n, i)
		}
	}
	return Bridge{lanes: lanes}, nil
}
