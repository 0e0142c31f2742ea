// internal/daily/daily.go
//
// Deterministic bridge source for the daily challenge.
// Every player who builds a bridge for the same date and salt gets the same
// lanes: lane n is the low bit of HMAC-SHA256(salt, "YYYY-MM-DD#n").

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Generator yields the 0/1 lane stream for one date.
type Generator struct {
	salt []byte
	key  string
	n    int
}

// NewGenerator starts the stream for date at position 0.
func NewGenerator(date time.Time, salt string) *Generator {
	return &Generator{salt: []byte(salt), key: DateKey(date)}
}

// Generate returns the next value in {0,1}.
func (g *Generator) Generate() int {
	h := hmac.New(sha256.New, g.salt)
	h.Write([]byte(g.key + "#" + strconv.Itoa(g.n)))
	g.n++
	return int(h.Sum(nil)[0] & 1)
}
