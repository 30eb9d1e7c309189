package selftest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessnumber/internal/digits"
	"github.com/robalobadob/guessnumber/internal/solver"
)

func TestPlayTranscript(t *testing.T) {
	e := solver.New()
	tr, err := Play(e, "1234", 0)
	require.NoError(t, err)
	require.True(t, tr.Solved)
	require.NotEmpty(t, tr.Rounds)
	assert.Equal(t, solver.Opening, tr.Rounds[0].Guess)
	assert.Equal(t, "0A3B", tr.Rounds[0].Result.String())
	last := tr.Rounds[len(tr.Rounds)-1]
	assert.Equal(t, digits.Solved, last.Result)
	assert.Equal(t, digits.Number("1234"), last.Guess)
	assert.LessOrEqual(t, len(tr.Rounds), DefaultSlowThreshold)
}

func TestPlayOpeningSecret(t *testing.T) {
	tr, err := Play(solver.New(), "0123", 0)
	require.NoError(t, err)
	assert.True(t, tr.Solved)
	assert.Len(t, tr.Rounds, 1)
}

func TestPlayCutoff(t *testing.T) {
	tr, err := Play(solver.New(), "9876", 1)
	require.NoError(t, err)
	assert.False(t, tr.Solved)
	assert.Len(t, tr.Rounds, 1)
}

func TestPlayInvalidSecret(t *testing.T) {
	_, err := Play(solver.New(), "1123", 0)
	assert.Error(t, err)
}

func TestSecrets(t *testing.T) {
	assert.Len(t, Secrets(0, 10000), digits.SpaceSize)
	assert.Empty(t, Secrets(0, 123))
	assert.Equal(t, []digits.Number{"0123", "0124", "0125"}, Secrets(0, 126))
	assert.Equal(t, []digits.Number{"9876"}, Secrets(9876, 9877))
}

func TestSplit(t *testing.T) {
	s := Secrets(0, 200)
	chunks := split(s, 3)
	total := 0
	for _, c := range chunks {
		assert.NotEmpty(t, c)
		total += len(c)
	}
	assert.Equal(t, len(s), total)
	assert.LessOrEqual(t, len(chunks), 3)
	assert.Nil(t, split(nil, 4))
	assert.Len(t, split(s[:2], 8), 2)
}

func TestRunSmallRange(t *testing.T) {
	rep, err := Run(context.Background(), Options{Start: 1200, End: 1300, Workers: 3})
	require.NoError(t, err)
	want := len(Secrets(1200, 1300))
	assert.Equal(t, want, rep.Games)
	assert.Zero(t, rep.Unsolved)
	assert.LessOrEqual(t, rep.MaxRounds, DefaultSlowThreshold)
	assert.Empty(t, rep.Slow)

	sum := 0
	for _, n := range rep.Histogram {
		sum += n
	}
	assert.Equal(t, want, sum)
	assert.Greater(t, rep.Mean(), 1.0)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Start: 0, End: 10000, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
