// internal/digits/types.go
//
// Core value types for the Guess Number domain.
// Defines:
//   - Number: a 4-digit string with pairwise distinct digits ("0123" is valid).
//   - Feedback: the "aAbB" answer for a guess (A = right place, B = wrong place).
//
// Constraints:
//   • The domain is fixed to 4 digits; no other lengths or alphabets.
//   • Values are plain strings/ints and are safe to copy.

package digits

import (
	"errors"
	"fmt"
	"strconv"
)

// Length is the number of digits in every Number.
const Length = 4

// buckets is the size of the dense Feedback index space (A*5+B).
const buckets = (Length + 1) * (Length + 1)

// Number is a guess or a secret. Callers must check IsValid before handing
// untrusted input to Score or the solver.
type Number string

// IsValid reports whether s has exactly four digit characters and no digit repeats.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	var seen [10]bool
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		if seen[c-'0'] {
			return false
		}
		seen[c-'0'] = true
	}
	return true
}

// Valid is IsValid for an already typed Number.
func (n Number) Valid() bool { return IsValid(string(n)) }

// String implements fmt.Stringer.
func (n Number) String() string { return string(n) }

// Feedback is the (A, B) pair produced by Score.
type Feedback struct {
	A int `json:"a"` // digits in the right position
	B int `json:"b"` // digits present elsewhere
}

// Solved is the feedback for an exact match.
var Solved = Feedback{A: Length}

// Buckets is the number of distinct Index values, including unreachable pairs.
const Buckets = buckets

// ErrMalformedFeedback is returned by ParseFeedback.
var ErrMalformedFeedback = errors.New("malformed feedback")

// Valid reports whether both counts are in range and A+B does not exceed Length.
func (f Feedback) Valid() bool {
	return f.A >= 0 && f.B >= 0 && f.A+f.B <= Length
}

// Index maps the pair onto [0, Buckets).
func (f Feedback) Index() int { return f.A*(Length+1) + f.B }

// String formats the pair the classic way, e.g. "1A2B".
func (f Feedback) String() string {
	return strconv.Itoa(f.A) + "A" + strconv.Itoa(f.B) + "B"
}

// ParseFeedback parses "aAbB" (case-insensitive letters), e.g. "0A4B".
func ParseFeedback(s string) (Feedback, error) {
	if len(s) != 4 {
		return Feedback{}, fmt.Errorf("%w: %q", ErrMalformedFeedback, s)
	}
	if (s[1] != 'A' && s[1] != 'a') || (s[3] != 'B' && s[3] != 'b') {
		return Feedback{}, fmt.Errorf("%w: %q", ErrMalformedFeedback, s)
	}
	if s[0] < '0' || s[0] > '9' || s[2] < '0' || s[2] > '9' {
		return Feedback{}, fmt.Errorf("%w: %q", ErrMalformedFeedback, s)
	}
	f := Feedback{A: int(s[0] - '0'), B: int(s[2] - '0')}
	if !f.Valid() {
		return Feedback{}, fmt.Errorf("%w: %q", ErrMalformedFeedback, s)
	}
	return f, nil
}
