// internal/bridge/validate.go
//
// Input parsing at the console/HTTP boundary.
// Raw text is turned into a bridge length, a Lane or a Command here so the
// state machine never sees an unchecked token.
//
// Rules:
//   - Length: ASCII digits only, non-empty, value in [MinLength, MaxLength].
//   - Direction: exactly "U" or "D".
//   - Command: exactly "R" or "Q".
// Matching is case-sensitive and does not trim.

package bridge

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	MinLength = 3
	MaxLength = 20
)

var (
	ErrInvalidLength    = errors.New("bridge length must be a number between 3 and 20")
	ErrInvalidDirection = errors.New("direction must be U (up) or D (down)")
	ErrInvalidCommand   = errors.New("command must be R (retry) or Q (quit)")
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ParseLength validates a bridge length typed by the player.
// Numerals too large for an int fail the same way as out-of-range ones.
func ParseLength(s string) (int, error) {
	if !digitsOnly.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinLength || n > MaxLength {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return n, nil
}

// ParseDirection maps "U"/"D" to a Lane.
func ParseDirection(s string) (Lane, error) {
	switch s {
	case "U":
		return Up, nil
	case "D":
		return Down, nil
	}
	return Down, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ParseCommand maps "R"/"Q" to a Command.
func ParseCommand(s string) (Command, error) {
	switch s {
	case "R":
		return Retry, nil
	case "Q":
		return Quit, nil
	}
	return Quit, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
}
