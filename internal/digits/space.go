// internal/digits/space.go
//
// Candidate space and secret selection.
//
// The candidate space is every zero-padded value 0000..9999 whose digits are
// pairwise distinct, in ascending order. The order matters: the solver breaks
// minimax ties toward the earliest member.

package digits

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SpaceSize is the number of valid Numbers (10*9*8*7).
const SpaceSize = 5040

// Space builds the ascending candidate space. Each call allocates a fresh
// slice; callers build it once and treat it as read-only.
func Space() []Number {
	out := make([]Number, 0, SpaceSize)
	for i := 0; i < 10000; i++ {
		s := fmt.Sprintf("%04d", i)
		if IsValid(s) {
			out = append(out, Number(s))
		}
	}
	return out
}

// Random returns a cryptographically random valid Number.
// If the random source fails, falls back to "1234".
func Random() Number {
	space := Space()
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(space))))
	if err != nil {
		return "1234"
	}
	return space[nBig.Int64()]
}
