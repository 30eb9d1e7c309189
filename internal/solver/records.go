package solver

import "github.com/robalobadob/guessnumber/internal/digits"

// records is the set of secrets still consistent with the current game.
// It only ever shrinks; Engine.Initialize replaces it with a fresh copy of
// the candidate space.
type records []digits.Number

func newRecords(space []digits.Number) records {
	r := make(records, len(space))
	copy(r, space)
	return r
}

// filter drops every key whose score against guess differs from fb.
// Order of the survivors is preserved.
func (r *records) filter(guess digits.Number, fb digits.Feedback) {
	kept := (*r)[:0]
	for _, key := range *r {
		if digits.Score(key, guess) == fb {
			kept = append(kept, key)
		}
	}
	*r = kept
}
