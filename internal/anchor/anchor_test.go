package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqeron/seqeron-go/internal/sequence"
	"github.com/seqeron/seqeron-go/internal/suffixtree"
)

func buildTree(t *testing.T, bases ...string) *suffixtree.SuffixTree {
	t.Helper()
	seqs := make([]*sequence.Sequence, len(bases))
	for i, b := range bases {
		s, err := sequence.New(b)
		require.NoError(t, err)
		seqs[i] = s
	}
	tree, err := suffixtree.Build(seqs)
	require.NoError(t, err)
	return tree
}

func TestFindChainNilTree(t *testing.T) {
	_, err := FindChain(nil, Options{})
	require.ErrorIs(t, err, ErrNilTree)
}

func TestFindChainNoSequences(t *testing.T) {
	tree, err := suffixtree.Build(nil)
	require.NoError(t, err)

	chain, err := FindChain(tree, Options{})
	require.NoError(t, err)
	assert.True(t, chain.IsEmpty())
}

func TestFindChainTwoAnchors(t *testing.T) {
	// Two shared blocks separated by unrelated spacers.
	seq1 := "ATGCATGC" + "AAA" + "GGTTGGTT"
	seq2 := "TT" + "ATGCATGC" + "C" + "GGTTGGTT"
	tree := buildTree(t, seq1, seq2)

	chain, err := FindChain(tree, Options{MinLength: 5})
	require.NoError(t, err)
	require.Equal(t, 2, chain.Len())

	first, second := chain.Anchors[0], chain.Anchors[1]
	assert.Equal(t, 8, first.Length)
	assert.Equal(t, []int{0, 2}, first.Starts)
	assert.Equal(t, 8, second.Length)
	assert.Equal(t, []int{11, 11}, second.Starts)
	assert.Equal(t, 16, chain.AnchoredLength())
}

func TestFindChainMonotoneNonOverlapping(t *testing.T) {
	seq1 := "CCATGCATGCGG" + "TAGGATCCTT"
	seq2 := "ATGCATGC" + "AA" + "AGGATCCT"
	seq3 := "TTTATGCATGC" + "AGGATCCTGG"
	tree := buildTree(t, seq1, seq2, seq3)

	chain, err := FindChain(tree, Options{MinLength: 4})
	require.NoError(t, err)
	require.False(t, chain.IsEmpty())

	nSeqs := tree.NumSequences()
	for _, a := range chain.Anchors {
		require.Len(t, a.Starts, nSeqs)
	}
	for s := 0; s < nSeqs; s++ {
		for k := 1; k < chain.Len(); k++ {
			prev, cur := chain.Anchors[k-1], chain.Anchors[k]
			assert.GreaterOrEqual(t, cur.Starts[s], prev.End(s),
				"anchors overlap in sequence %d", s)
		}
	}
}

func TestFindChainAnchorsAreExactMatches(t *testing.T) {
	seqs := []string{
		"GGGATGCATGCTTT",
		"ATGCATGCAA",
		"CCCCATGCATGC",
	}
	tree := buildTree(t, seqs...)

	chain, err := FindChain(tree, Options{MinLength: 6})
	require.NoError(t, err)
	require.False(t, chain.IsEmpty())

	for _, a := range chain.Anchors {
		ref := seqs[0][a.Starts[0] : a.Starts[0]+a.Length]
		for s := 1; s < len(seqs); s++ {
			assert.Equal(t, ref, seqs[s][a.Starts[s]:a.Starts[s]+a.Length])
		}
	}
}

func TestFindChainUnrelated(t *testing.T) {
	tree := buildTree(t, "AAAAAAAAAAAA", "TTTTTTTTTTTT")

	chain, err := FindChain(tree, Options{MinLength: 4})
	require.NoError(t, err)
	assert.True(t, chain.IsEmpty())
}

func TestFindChainMinLengthFiltersShortMatches(t *testing.T) {
	// Longest shared substring has length 4.
	tree := buildTree(t, "ATGCAAAAAA", "TTTTTTATGC")

	chain, err := FindChain(tree, Options{MinLength: 6})
	require.NoError(t, err)
	assert.True(t, chain.IsEmpty())

	chain, err = FindChain(tree, Options{MinLength: 4})
	require.NoError(t, err)
	assert.False(t, chain.IsEmpty())
}

func TestCandidatesRelaxedCoverage(t *testing.T) {
	// "GGATCC" present in two of three sequences only.
	tree := buildTree(t, "AAGGATCCAA", "GGATCCTTTT", "CCCCCCAAAA")

	strict, err := Candidates(tree, Options{MinLength: 4})
	require.NoError(t, err)

	relaxed, err := Candidates(tree, Options{MinLength: 6, MinCoverage: 2})
	require.NoError(t, err)
	require.NotEmpty(t, relaxed)

	found := false
	for _, r := range relaxed {
		if r.Text(tree) == "GGATCC" {
			found = true
		}
	}
	assert.True(t, found)

	// Full coverage cannot include it.
	for _, r := range strict {
		assert.NotEqual(t, "GGATCC", r.Text(tree))
	}
}
