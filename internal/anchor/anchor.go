// Package anchor derives co-linear exact-match anchors from a
// generalized suffix tree. An anchor is a substring above a minimum
// length that occurs in every indexed sequence; a chain is an ordered
// set of anchors whose occurrences are strictly increasing and
// non-overlapping within each sequence, usable as scaffolding to
// partition a multiple alignment.
package anchor

import (
	"errors"
	"sort"

	"github.com/seqeron/seqeron-go/internal/suffixtree"
)

// DefaultMinLength is the minimum anchor length used when the caller
// does not supply one.
const DefaultMinLength = 8

// ErrNilTree is returned when a nil suffix tree is passed in.
var ErrNilTree = errors.New("anchor: nil suffix tree")

// Anchor is one exact match placed consistently across all sequences.
// Starts[s] is its 0-based offset in sequence s.
type Anchor struct {
	Length int
	Starts []int
}

// End returns the exclusive end offset of the anchor in sequence s.
func (a *Anchor) End(s int) int {
	return a.Starts[s] + a.Length
}

// Chain is an ordered, mutually consistent set of anchors. Empty chains
// are the expected outcome for unrelated sequences and signal fallback
// to classical alignment.
type Chain struct {
	Anchors []*Anchor
}

// Len returns the number of anchors in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Anchors)
}

// IsEmpty reports whether the chain holds no anchors.
func (c *Chain) IsEmpty() bool {
	return c.Len() == 0
}

// AnchoredLength returns the total number of anchored characters per
// sequence.
func (c *Chain) AnchoredLength() int {
	total := 0
	for _, a := range c.Anchors {
		total += a.Length
	}
	return total
}

// Options tunes anchor derivation.
type Options struct {
	// MinLength is the minimum anchor length; DefaultMinLength if zero.
	MinLength int
	// MinCoverage relaxes the candidate search to substrings present in
	// at least this many sequences. Zero means every sequence. Only
	// candidates covering all sequences can enter a chain.
	MinCoverage int
}

func (o Options) minLength() int {
	if o.MinLength <= 0 {
		return DefaultMinLength
	}
	return o.MinLength
}

// Candidates enumerates the repeated substrings eligible as anchors,
// before chain selection. Exposed for diagnostics.
func Candidates(tree *suffixtree.SuffixTree, opts Options) ([]*suffixtree.Repeat, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	minSeqs := opts.MinCoverage
	if minSeqs <= 0 || minSeqs > tree.NumSequences() {
		minSeqs = tree.NumSequences()
	}
	if tree.NumSequences() == 0 {
		return nil, nil
	}
	return tree.CommonSubstrings(opts.minLength(), minSeqs), nil
}

// FindChain selects the highest-total-length consistent chain of
// anchors from the tree's common substrings. The selection is a
// longest-increasing-subsequence style dynamic program keyed on
// occurrence offsets: each candidate is placed at the earliest feasible
// occurrence in every sequence, and a candidate may follow another only
// if it starts strictly after that anchor's end in every sequence.
//
// An empty chain is returned when the sequences share no sufficiently
// long common substring.
func FindChain(tree *suffixtree.SuffixTree, opts Options) (*Chain, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	nSeqs := tree.NumSequences()
	if nSeqs == 0 {
		return &Chain{}, nil
	}

	cands, err := Candidates(tree, Options{MinLength: opts.minLength()})
	if err != nil {
		return nil, err
	}
	// Chain members must occur in every sequence.
	full := cands[:0:0]
	for _, c := range cands {
		covered := true
		for _, offs := range c.Positions {
			if len(offs) == 0 {
				covered = false
				break
			}
		}
		if covered {
			full = append(full, c)
		}
	}
	if len(full) == 0 {
		return &Chain{}, nil
	}

	// Process candidates by their first occurrence in sequence 0.
	sort.SliceStable(full, func(i, j int) bool {
		return full[i].Positions[0][0] < full[j].Positions[0][0]
	})

	type state struct {
		score  int
		starts []int
		parent int
	}
	dp := make([]state, len(full))

	place := func(c *suffixtree.Repeat, after []int) ([]int, bool) {
		starts := make([]int, nSeqs)
		for s := 0; s < nSeqs; s++ {
			offs := c.Positions[s]
			min := 0
			if after != nil {
				min = after[s]
			}
			k := sort.SearchInts(offs, min)
			if k == len(offs) {
				return nil, false
			}
			starts[s] = offs[k]
		}
		return starts, true
	}

	best := -1
	for i, c := range full {
		starts, ok := place(c, nil)
		if !ok {
			dp[i] = state{score: -1, parent: -1}
			continue
		}
		dp[i] = state{score: c.Length, starts: starts, parent: -1}

		for j := 0; j < i; j++ {
			if dp[j].score < 0 {
				continue
			}
			after := make([]int, nSeqs)
			for s := 0; s < nSeqs; s++ {
				after[s] = dp[j].starts[s] + full[j].Length
			}
			starts, ok := place(c, after)
			if !ok {
				continue
			}
			if sc := dp[j].score + c.Length; sc > dp[i].score {
				dp[i] = state{score: sc, starts: starts, parent: j}
			}
		}

		if best < 0 || dp[i].score > dp[best].score {
			best = i
		}
	}
	if best < 0 || dp[best].score <= 0 {
		return &Chain{}, nil
	}

	// Reconstruct in chain order.
	var anchors []*Anchor
	for i := best; i >= 0; i = dp[i].parent {
		anchors = append(anchors, &Anchor{
			Length: full[i].Length,
			Starts: dp[i].starts,
		})
	}
	for i, j := 0, len(anchors)-1; i < j; i, j = i+1, j-1 {
		anchors[i], anchors[j] = anchors[j], anchors[i]
	}
	return &Chain{Anchors: anchors}, nil
}
