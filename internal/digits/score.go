package digits

// Score compares guess against ref.
//
// For each position: an equal digit counts toward A; otherwise a digit that
// appears anywhere in ref counts toward B. Both arguments must be valid
// Numbers; nothing is checked here because the solver calls this in its
// innermost loop.
func Score(guess, ref Number) Feedback {
	var f Feedback
	for i := 0; i < Length; i++ {
		c := guess[i]
		if c == ref[i] {
			f.A++
			continue
		}
		for j := 0; j < Length; j++ {
			if ref[j] == c {
				f.B++
				break
			}
		}
	}
	return f
}
