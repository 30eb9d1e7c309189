// internal/daily/daily.go
//
// Deterministic secret of the day: HMAC(salt, YYYY-MM-DD) indexes the
// candidate space, so every server instance with the same salt agrees.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/guessnumber/internal/digits"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret picks the day's secret from space (ascending candidate space).
func Secret(date time.Time, salt string, space []digits.Number) (int, digits.Number) {
	if len(space) == 0 {
		return 0, ""
	}
	idx := SecretIndex(date, salt, len(space))
	return idx, space[idx]
}
