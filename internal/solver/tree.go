package solver

import "github.com/robalobadob/guessnumber/internal/digits"

// node caches the guess chosen after a particular feedback history.
// children is indexed by digits.Feedback.Index; unreachable pairs stay nil.
type node struct {
	guess    digits.Number
	children [digits.Buckets]*node
}

// tree memoizes guesses across games played on one Engine. The root is the
// empty history and holds the opening guess. Nodes are never removed.
type tree struct {
	root  *node
	nodes int
}

func newTree(opening digits.Number) *tree {
	return &tree{root: &node{guess: opening}, nodes: 1}
}

// walk follows history from the root and returns nil at the first missing child.
func (t *tree) walk(history []digits.Feedback) *node {
	n := t.root
	for _, fb := range history {
		n = n.children[fb.Index()]
		if n == nil {
			return nil
		}
	}
	return n
}

// lookup returns the guess cached for the full history, if any.
func (t *tree) lookup(history []digits.Feedback) (digits.Number, bool) {
	n := t.walk(history)
	if n == nil {
		return "", false
	}
	return n.guess, true
}

// insert records guess under prefix+fb. It creates no intermediate nodes and
// never overwrites an existing child. Reports whether a node was added.
func (t *tree) insert(prefix []digits.Feedback, fb digits.Feedback, guess digits.Number) bool {
	n := t.walk(prefix)
	if n == nil || n.children[fb.Index()] != nil {
		return false
	}
	n.children[fb.Index()] = &node{guess: guess}
	t.nodes++
	return true
}

func (t *tree) size() int { return t.nodes }
