package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessnumber/internal/digits"
)

func TestFilterShrinksAndKeepsSecret(t *testing.T) {
	space := digits.Space()
	recs := newRecords(space)
	secret := digits.Number("7295")
	for _, g := range []digits.Number{"0123", "4567", "7259"} {
		before := len(recs)
		recs.filter(g, digits.Score(secret, g))
		assert.LessOrEqual(t, len(recs), before)
		assert.Contains(t, recs, secret)
		for _, key := range recs {
			assert.Equal(t, digits.Score(secret, g), digits.Score(key, g))
		}
	}
	// filtering must not touch the shared space
	assert.Equal(t, digits.Number("0123"), space[0])
	assert.Len(t, space, digits.SpaceSize)
}

func TestSelectGuessShortcuts(t *testing.T) {
	space := digits.Space()

	_, err := selectGuess(records{}, space)
	assert.ErrorIs(t, err, ErrContradictoryFeedback)

	g, err := selectGuess(records{"9876"}, space)
	require.NoError(t, err)
	assert.Equal(t, digits.Number("9876"), g)
}

func TestSelectGuessTieBreaksTowardSmallest(t *testing.T) {
	space := digits.Space()

	g, err := selectGuess(records{"0123", "0124"}, space)
	require.NoError(t, err)
	assert.Equal(t, digits.Number("0123"), g)

	// 0124..0126 score both records alike; 0127 is the first that splits them
	g, err = selectGuess(records{"4567", "4568"}, space)
	require.NoError(t, err)
	assert.Equal(t, digits.Number("0127"), g)
}

func TestSelectGuessMayProbeOutsideRecords(t *testing.T) {
	space := digits.Space()
	// Every record shares 1,2,3; only the first digit differs. Guessing a record
	// leaves the other four in one bucket, a probe like 4560 leaves at most two.
	recs := records{"4123", "5123", "6123", "7123", "8123"}
	assert.Equal(t, 4, worstCase("4123", recs, len(recs)+1))
	assert.Equal(t, 2, worstCase("4560", recs, len(recs)+1))

	g, err := selectGuess(recs, space)
	require.NoError(t, err)
	assert.Equal(t, 2, worstCase(g, recs, len(recs)+1))
	assert.NotContains(t, recs, g)
}

func TestWorstCaseCountsDisjointBucket(t *testing.T) {
	recs := records{"4567", "4589", "5678"}
	// 0123 shares no digit with any record: everything lands in 0A0B.
	assert.Equal(t, 3, worstCase("0123", recs, 10))
	assert.Equal(t, 2, worstCase("0123", recs, 2), "stops at limit")
}

func TestTreeLookupAndInsert(t *testing.T) {
	tr := newTree(Opening)
	g, ok := tr.lookup(nil)
	require.True(t, ok)
	assert.Equal(t, Opening, g)

	a := digits.Feedback{A: 1, B: 1}
	b := digits.Feedback{B: 2}

	_, ok = tr.lookup([]digits.Feedback{a})
	assert.False(t, ok)

	assert.False(t, tr.insert([]digits.Feedback{a}, b, "4567"), "prefix path missing")
	assert.True(t, tr.insert(nil, a, "1045"))
	assert.False(t, tr.insert(nil, a, "9999"), "first write wins")
	assert.True(t, tr.insert([]digits.Feedback{a}, b, "4567"))

	g, ok = tr.lookup([]digits.Feedback{a})
	require.True(t, ok)
	assert.Equal(t, digits.Number("1045"), g)
	g, ok = tr.lookup([]digits.Feedback{a, b})
	require.True(t, ok)
	assert.Equal(t, digits.Number("4567"), g)

	_, ok = tr.lookup([]digits.Feedback{b, a})
	assert.False(t, ok)
	assert.Equal(t, 3, tr.size())
}
