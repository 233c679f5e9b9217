package suffixtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqeron/seqeron-go/internal/sequence"
)

func mustSeqs(t *testing.T, bases ...string) []*sequence.Sequence {
	t.Helper()
	out := make([]*sequence.Sequence, len(bases))
	for i, b := range bases {
		s, err := sequence.New(b)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func TestBuildNilSequence(t *testing.T) {
	_, err := Build([]*sequence.Sequence{nil})
	require.ErrorIs(t, err, ErrNilSequence)
}

func TestEmptyTree(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, tree.NumLeaves())
	assert.False(t, tree.Contains("A"))
	assert.Empty(t, tree.Occurrences("A"))
	assert.Equal(t, 0, tree.LongestExtension("ACGT"))

	// Diagnostics must not panic on an empty tree.
	assert.NotEmpty(t, tree.Dump())
	assert.NotEmpty(t, tree.Summary())
}

func TestContains(t *testing.T) {
	tree, err := Build(mustSeqs(t, "ATGCATGC"))
	require.NoError(t, err)

	tests := []struct {
		pattern string
		want    bool
	}{
		{"ATGC", true},
		{"GCAT", true},
		{"ATGCATGC", true},
		{"A", true},
		{"C", true},
		{"ATGG", false},
		{"TTT", false},
		{"atgc", true}, // queries are case-normalized
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Contains(tt.pattern))
		})
	}
}

func TestLeafCountEqualsSuffixCount(t *testing.T) {
	// One leaf per suffix of text+sentinel.
	text := "MISSISSIPPI"
	s, err := sequence.WithMetadata(text, "", "", sequence.Protein)
	require.NoError(t, err)
	tree, err := Build([]*sequence.Sequence{s})
	require.NoError(t, err)

	assert.Equal(t, len(text)+1, tree.NumLeaves())
}

func TestOccurrences(t *testing.T) {
	tree, err := Build(mustSeqs(t, "ATGCATGC"))
	require.NoError(t, err)

	t.Run("repeated substring", func(t *testing.T) {
		occ := tree.Occurrences("ATGC")
		require.Len(t, occ, 2)
		assert.Equal(t, Position{SeqIndex: 0, Offset: 0}, occ[0])
		assert.Equal(t, Position{SeqIndex: 0, Offset: 4}, occ[1])
	})

	t.Run("absent substring", func(t *testing.T) {
		assert.Empty(t, tree.Occurrences("TTAA"))
	})

	t.Run("whole text at offset zero", func(t *testing.T) {
		occ := tree.Occurrences("ATGCATGC")
		require.NotEmpty(t, occ)
		assert.Equal(t, Position{SeqIndex: 0, Offset: 0}, occ[0])
	})
}

func TestGeneralizedOccurrences(t *testing.T) {
	tree, err := Build(mustSeqs(t, "ATGCAT", "GGATGC", "ATGC"))
	require.NoError(t, err)

	occ := tree.Occurrences("ATGC")
	require.Len(t, occ, 3)
	assert.Equal(t, Position{SeqIndex: 0, Offset: 0}, occ[0])
	assert.Equal(t, Position{SeqIndex: 1, Offset: 2}, occ[1])
	assert.Equal(t, Position{SeqIndex: 2, Offset: 0}, occ[2])
}

func TestNoCrossSequenceMatch(t *testing.T) {
	// "CA" would appear only if the boundary between the two inputs
	// could be crossed; sentinels must prevent that.
	tree, err := Build(mustSeqs(t, "GGC", "ATT"))
	require.NoError(t, err)
	assert.False(t, tree.Contains("CA"))
	assert.Empty(t, tree.Occurrences("CAT"))
}

func TestLongestExtension(t *testing.T) {
	tree, err := Build(mustSeqs(t, "ATGCATGC"))
	require.NoError(t, err)

	assert.Equal(t, 4, tree.LongestExtension("ATGCT"))
	assert.Equal(t, 8, tree.LongestExtension("ATGCATGC"))
	assert.Equal(t, 0, tree.LongestExtension("TTTT"))
	assert.Equal(t, 3, tree.LongestExtension("GCAGCA"))
}

func TestDumpAndSummary(t *testing.T) {
	tree, err := Build(mustSeqs(t, "ATGC", "GCAT"))
	require.NoError(t, err)

	dump := tree.Dump()
	assert.NotEmpty(t, dump)
	assert.Contains(t, dump, "root")
	assert.Contains(t, dump, "leaf")
	// Deterministic output.
	assert.Equal(t, dump, tree.Dump())

	sum := tree.Summary()
	assert.Contains(t, sum, "2 sequences")
	assert.Contains(t, sum, "leaves")
}

func TestCommonSubstrings(t *testing.T) {
	t.Run("shared block in all sequences", func(t *testing.T) {
		tree, err := Build(mustSeqs(t, "TTATGCATGG", "CCATGCAT", "ATGCATAA"))
		require.NoError(t, err)

		reps := tree.CommonSubstrings(4, 3)
		require.NotEmpty(t, reps)

		best := reps[0]
		assert.GreaterOrEqual(t, best.Length, 4)
		text := best.Text(tree)
		assert.Len(t, text, best.Length)
		for s := 0; s < 3; s++ {
			require.NotEmpty(t, best.Positions[s], "sequence %d missing occurrence", s)
		}
		assert.Contains(t, "ATGCAT", text)
	})

	t.Run("unrelated sequences", func(t *testing.T) {
		tree, err := Build(mustSeqs(t, "AAAAAAAA", "TTTTTTTT"))
		require.NoError(t, err)
		assert.Empty(t, tree.CommonSubstrings(3, 2))
	})

	t.Run("min length respected", func(t *testing.T) {
		tree, err := Build(mustSeqs(t, "ACGT", "TACG"))
		require.NoError(t, err)
		for _, r := range tree.CommonSubstrings(3, 2) {
			assert.GreaterOrEqual(t, r.Length, 3)
		}
	})
}

func TestQueryFromMultipleGoroutines(t *testing.T) {
	tree, err := Build(mustSeqs(t, strings.Repeat("ACGTTGCA", 32)))
	require.NoError(t, err)

	done := make(chan bool)
	for g := 0; g < 8; g++ {
		go func() {
			for i := 0; i < 100; i++ {
				tree.Contains("ACGT")
				tree.Occurrences("TGCA")
				tree.LongestExtension("ACGTTG")
			}
			done <- true
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}

func BenchmarkBuild(b *testing.B) {
	s, _ := sequence.New(strings.Repeat("ACGTTGCAATGC", 100))
	seqs := []*sequence.Sequence{s}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(seqs)
	}
}

func BenchmarkOccurrences(b *testing.B) {
	s, _ := sequence.New(strings.Repeat("ACGTTGCAATGC", 100))
	tree, _ := Build([]*sequence.Sequence{s})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.Occurrences("TGCAATGCACGT")
	}
}
