package solver

import "github.com/robalobadob/guessnumber/internal/digits"

// worstCase returns the size of the largest partition that guess induces on
// recs, or the first partition size reaching limit if that comes earlier.
// The 0A0B bucket is a partition like any other.
func worstCase(guess digits.Number, recs records, limit int) int {
	var hist [digits.Buckets]int
	worst := 0
	for _, key := range recs {
		i := digits.Score(guess, key).Index()
		hist[i]++
		if hist[i] > worst {
			worst = hist[i]
			if worst >= limit {
				return worst
			}
		}
	}
	return worst
}

// selectGuess picks the member of space with the smallest worst-case
// partition of recs. Ties keep the earliest member, so the result depends on
// space being in ascending order. Guesses outside recs are considered on
// purpose: a probe that cannot be the secret may still split recs better.
func selectGuess(recs records, space []digits.Number) (digits.Number, error) {
	switch len(recs) {
	case 0:
		return "", ErrContradictoryFeedback
	case 1:
		return recs[0], nil
	}
	best := len(recs) + 1
	var pick digits.Number
	for _, g := range space {
		// A candidate that reaches best can only tie, and ties never win.
		if s := worstCase(g, recs, best); s < best {
			best, pick = s, g
		}
	}
	return pick, nil
}
