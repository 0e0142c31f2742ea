// Package random supplies the default bridge source: an unpredictable 0/1
// stream read from crypto/rand.
package random

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/rs/zerolog/log"
)

var two = big.NewInt(2)

// Generator draws each value independently from Source, or from
// crypto/rand.Reader when Source is nil.
type Generator struct {
	Source io.Reader
}

// Generate returns 0 or 1. A failing entropy source is logged and panics,
// since any fallback value would make the bridge predictable.
func (g Generator) Generate() int {
	src := g.Source
	if src == nil {
		src = rand.Reader
	}
	n, err := rand.Int(src, two)
	if err != nil {
		log.Panic().Err(err).Msg("read random lane")
	}
	return int(n.Int64())
}
