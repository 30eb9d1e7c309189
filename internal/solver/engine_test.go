package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessnumber/internal/digits"
)

// play drives e against secret until 4A0B and returns every guess made.
func play(t *testing.T, e *Engine, secret digits.Number) []digits.Number {
	t.Helper()
	g, err := e.Guess(nil)
	require.NoError(t, err)
	var guesses []digits.Number
	for round := 1; ; round++ {
		guesses = append(guesses, g)
		fb := digits.Score(g, secret)
		if fb == digits.Solved {
			return guesses
		}
		require.Less(t, round, 10, "secret %s not found: %v", secret, guesses)
		g, err = e.Guess(&fb)
		require.NoError(t, err)
	}
}

func TestOpeningGuess(t *testing.T) {
	e := New()
	g, err := e.Guess(nil)
	require.NoError(t, err)
	assert.Equal(t, Opening, g)
	assert.Equal(t, digits.SpaceSize, e.Remaining())
	assert.Empty(t, e.History())
}

func TestSolveSecret1234(t *testing.T) {
	e := New()
	guesses := play(t, e, "1234")
	assert.Equal(t, Opening, guesses[0])
	assert.Equal(t, digits.Feedback{A: 0, B: 3}, digits.Score(guesses[0], "1234"))
	assert.LessOrEqual(t, len(guesses), 7)
	assert.Equal(t, digits.Number("1234"), guesses[len(guesses)-1])
}

func TestSolveOpeningSecretInOneRound(t *testing.T) {
	e := New()
	guesses := play(t, e, "0123")
	assert.Equal(t, []digits.Number{"0123"}, guesses)
}

func TestSolveLeadingZeroSecret(t *testing.T) {
	require.True(t, digits.IsValid("0987"))
	e := New()
	guesses := play(t, e, "0987")
	assert.LessOrEqual(t, len(guesses), 7)
}

func TestSolveSampledSecrets(t *testing.T) {
	if testing.Short() {
		t.Skip("sweep")
	}
	e := New()
	space := digits.Space()
	for i := 0; i < len(space); i += 97 {
		guesses := play(t, e, space[i])
		assert.LessOrEqual(t, len(guesses), 7, "secret %s: %v", space[i], guesses)
	}
}

func TestCacheConsistencyAcrossGames(t *testing.T) {
	e := New()
	first := play(t, e, "5170")
	runs := e.Stats().MinimaxRuns
	nodes := e.Stats().TreeNodes
	require.Greater(t, runs, 0)

	second := play(t, e, "5170")
	assert.Equal(t, first, second)
	assert.Equal(t, runs, e.Stats().MinimaxRuns, "replayed history must not rerun minimax")
	assert.Equal(t, nodes, e.Stats().TreeNodes)
	assert.Greater(t, e.Stats().CacheHits, 0)
}

func TestSeparateEnginesAgree(t *testing.T) {
	a, b := New(), New()
	play(t, a, "2468")
	assert.Equal(t, play(t, a, "9753"), play(t, b, "9753"))
}

func TestSingleRecordIsReturned(t *testing.T) {
	e := New()
	_, err := e.Guess(nil)
	require.NoError(t, err)
	g, err := e.Guess(&digits.Solved)
	require.NoError(t, err)
	assert.Equal(t, Opening, g)
	assert.Equal(t, 1, e.Remaining())
	assert.Zero(t, e.Stats().MinimaxRuns)

	_, err = e.Guess(nil)
	require.NoError(t, err)
	secret := digits.Number("8403")
	fb := digits.Score(Opening, secret)
	for i := 0; i < 10; i++ {
		g, err := e.Guess(&fb)
		require.NoError(t, err)
		if e.Remaining() == 1 {
			assert.Equal(t, secret, g)
			assert.Equal(t, digits.Solved, digits.Score(g, secret))
			return
		}
		fb = digits.Score(g, secret)
		if fb == digits.Solved {
			return
		}
	}
	t.Fatalf("records never narrowed to one for %s", secret)
}

func TestContradictoryFeedback(t *testing.T) {
	e := New()
	_, err := e.Guess(nil)
	require.NoError(t, err)

	// three in place and one misplaced cannot happen with distinct digits
	_, err = e.Guess(&digits.Feedback{A: 3, B: 1})
	require.ErrorIs(t, err, ErrContradictoryFeedback)
	assert.Contains(t, err.Error(), "3A1B")
	assert.Equal(t, 0, e.Remaining())

	_, err = e.Guess(&digits.Feedback{A: 0, B: 0})
	assert.ErrorIs(t, err, ErrContradictoryFeedback)

	g, err := e.Guess(nil)
	require.NoError(t, err)
	assert.Equal(t, Opening, g)
	assert.Equal(t, digits.SpaceSize, e.Remaining())
}

func TestContradictionAfterRepeatedMisses(t *testing.T) {
	e := New()
	_, err := e.Guess(nil)
	require.NoError(t, err)
	miss := digits.Feedback{}
	for i := 0; i < 10; i++ {
		if _, err = e.Guess(&miss); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrContradictoryFeedback)
}

func TestInvalidFeedback(t *testing.T) {
	e := New()
	_, err := e.Guess(nil)
	require.NoError(t, err)
	for _, fb := range []digits.Feedback{{A: 5}, {A: -1}, {A: 2, B: 3}} {
		_, err := e.Guess(&fb)
		assert.ErrorIs(t, err, ErrInvalidFeedback)
	}
	assert.Equal(t, digits.SpaceSize, e.Remaining())
	assert.Empty(t, e.History())
}

func TestFeedbackBeforeOpening(t *testing.T) {
	e := New()
	_, err := e.Guess(&digits.Feedback{A: 1})
	assert.ErrorIs(t, err, ErrNoGuessYet)
}

func TestInitializeKeepsTree(t *testing.T) {
	e := New()
	play(t, e, "3607")
	nodes := e.Stats().TreeNodes
	require.Greater(t, nodes, 1)
	e.Initialize()
	assert.Equal(t, nodes, e.Stats().TreeNodes)
	assert.Equal(t, digits.SpaceSize, e.Remaining())
	assert.Empty(t, e.History())
}

func TestPoolReusesEngines(t *testing.T) {
	p := NewPool(1)
	e := p.Get()
	play(t, e, "1234")
	nodes := e.Stats().TreeNodes
	p.Put(e)
	assert.Equal(t, 1, p.Idle())

	again := p.Get()
	assert.Same(t, e, again)
	assert.Equal(t, nodes, again.Stats().TreeNodes)
	assert.Equal(t, digits.SpaceSize, again.Remaining())

	p.Put(again)
	p.Put(New())
	assert.Equal(t, 1, p.Idle())
}
