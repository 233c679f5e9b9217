package alignment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqeron/seqeron-go/internal/sequence"
)

func mustSeq(t *testing.T, bases string) *sequence.Sequence {
	t.Helper()
	s, err := sequence.New(bases)
	require.NoError(t, err)
	return s
}

func TestScoringMatrix(t *testing.T) {
	t.Run("SimpleDNA", func(t *testing.T) {
		s := SimpleDNA()
		assert.Equal(t, 1, s.Match)
		assert.Equal(t, -1, s.Mismatch)
		assert.Equal(t, -2, s.GapOpen)
		assert.Equal(t, -1, s.GapExtend)
	})

	t.Run("GapCost affine", func(t *testing.T) {
		s := SimpleDNA()
		assert.Equal(t, 0, s.GapCost(0))
		assert.Equal(t, -2, s.GapCost(1))
		assert.Equal(t, -3, s.GapCost(2))
		assert.Equal(t, -6, s.GapCost(5))
	})

	t.Run("Score", func(t *testing.T) {
		s := DefaultDNA()
		assert.Equal(t, 2, s.Score('A', 'A'))
		assert.Equal(t, -1, s.Score('A', 'T'))
	})

	t.Run("Invalid scoring matrix", func(t *testing.T) {
		_, err := NewScoringMatrix(0, -1, -2, -1)
		require.Error(t, err)

		_, err = NewScoringMatrix(2, 1, -2, -1)
		require.Error(t, err)
	})
}

func TestAlignNilArguments(t *testing.T) {
	seq := mustSeq(t, "ATGC")

	_, err := Align(nil, seq, nil, Global)
	require.ErrorIs(t, err, ErrNilSequence)

	_, err = Align(seq, nil, nil, Global)
	require.ErrorIs(t, err, ErrNilSequence)
}

func TestGlobalIdentical(t *testing.T) {
	seq1 := mustSeq(t, "ATGC")
	seq2 := mustSeq(t, "ATGC")

	a, err := Align(seq1, seq2, SimpleDNA(), Global)
	require.NoError(t, err)

	assert.Equal(t, 4, a.Score)
	assert.Equal(t, "ATGC", a.AlignedSeq1)
	assert.Equal(t, "ATGC", a.AlignedSeq2)
	assert.Equal(t, 0, a.GapCount())
	assert.Equal(t, 0, a.Start1)
	assert.Equal(t, 3, a.End1)
}

func TestGlobalMismatch(t *testing.T) {
	seq1 := mustSeq(t, "ATGC")
	seq2 := mustSeq(t, "ATTC")

	a, err := Align(seq1, seq2, SimpleDNA(), Global)
	require.NoError(t, err)

	assert.Equal(t, 3, a.MatchCount())
	assert.Equal(t, 1, a.MismatchCount())
	assert.InDelta(t, 0.75, a.Identity(), 0.0001)
}

func TestGlobalScoreEqualsLengthForIdentical(t *testing.T) {
	for _, bases := range []string{"A", "ACGT", "ACGTACGTACGTACGT"} {
		seq := mustSeq(t, bases)
		a, err := Align(seq, seq, SimpleDNA(), Global)
		require.NoError(t, err)
		assert.Equal(t, len(bases), a.Score, "length %d", len(bases))
	}
}

func TestGlobalAffineGapRun(t *testing.T) {
	// A single three-column gap run should be preferred over three
	// separate gap openings.
	seq1 := mustSeq(t, "AAATTTAAA")
	seq2 := mustSeq(t, "AAAAAA")

	a, err := Align(seq1, seq2, DefaultDNA(), Global)
	require.NoError(t, err)

	assert.Equal(t, "AAATTTAAA", a.AlignedSeq1)
	assert.Equal(t, "AAA---AAA", a.AlignedSeq2)
	// 6 matches at +2, one gap run of length 3 at -2-1-1.
	assert.Equal(t, 8, a.Score)
	assert.Equal(t, 1, a.GapOpenings())
}

func TestGlobalEmptyAgainstNonEmpty(t *testing.T) {
	empty := mustSeq(t, "")
	seq := mustSeq(t, "ACGT")

	a, err := Align(empty, seq, SimpleDNA(), Global)
	require.NoError(t, err)

	assert.Equal(t, "----", a.AlignedSeq1)
	assert.Equal(t, "ACGT", a.AlignedSeq2)
	assert.Equal(t, SimpleDNA().GapCost(4), a.Score)

	a, err = Align(seq, empty, SimpleDNA(), Global)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", a.AlignedSeq1)
	assert.Equal(t, "----", a.AlignedSeq2)
}

func TestGlobalBothEmpty(t *testing.T) {
	empty := mustSeq(t, "")

	a, err := Align(empty, empty, nil, Global)
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 0, a.Score)
}

func TestLocalFloor(t *testing.T) {
	tests := []struct {
		name string
		seq1 string
		seq2 string
	}{
		{"unrelated", "AAAA", "TTTT"},
		{"partial overlap", "ATGCATGC", "GGGGATGC"},
		{"single base", "A", "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Align(mustSeq(t, tt.seq1), mustSeq(t, tt.seq2), SimpleDNA(), Local)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, a.Score, 0)
		})
	}
}

func TestLocalUnrelatedIsEmpty(t *testing.T) {
	a, err := Align(mustSeq(t, "AAAA"), mustSeq(t, "TTTT"), SimpleDNA(), Local)
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, -1, a.Start1)
}

func TestLocalSubstring(t *testing.T) {
	seq1 := mustSeq(t, "TTTTATGCATTT")
	seq2 := mustSeq(t, "GGATGCAGG")

	a, err := Align(seq1, seq2, SimpleDNA(), Local)
	require.NoError(t, err)

	assert.Equal(t, "ATGCA", a.AlignedSeq1)
	assert.Equal(t, "ATGCA", a.AlignedSeq2)
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, 4, a.Start1)
	assert.Equal(t, 8, a.End1)
	assert.Equal(t, 2, a.Start2)
	assert.Equal(t, 6, a.End2)

	// Positions index the aligned-over substrings of the originals.
	assert.Equal(t, seq1.Bases[a.Start1:a.End1+1], a.Ungapped1())
	assert.Equal(t, seq2.Bases[a.Start2:a.End2+1], a.Ungapped2())
}

func TestLocalEmptyInput(t *testing.T) {
	empty := mustSeq(t, "")
	seq := mustSeq(t, "ACGT")

	a, err := Align(empty, seq, nil, Local)
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())
}

func TestSemiGlobalQueryInReference(t *testing.T) {
	query := mustSeq(t, "GGC")
	ref := mustSeq(t, "AAGGCTT")

	a, err := Align(query, ref, SimpleDNA(), SemiGlobal)
	require.NoError(t, err)

	assert.Equal(t, 3, a.Score)
	assert.Equal(t, "GGC", a.AlignedSeq1)
	assert.Equal(t, "GGC", a.AlignedSeq2)
	assert.Equal(t, 2, a.Start2)
	assert.Equal(t, 4, a.End2)
}

func TestSemiGlobalSubstringProperty(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ref   string
	}{
		{"exact interior", "ATGC", "TTTTATGCTTTT"},
		{"with mismatch", "ATGC", "GGATCCGG"},
		{"longer query", "ATGCATGCAT", "ATGC"},
		{"query is reference", "ACGT", "ACGT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := mustSeq(t, tt.query)
			ref := mustSeq(t, tt.ref)

			a, err := Align(query, ref, SimpleDNA(), SemiGlobal)
			require.NoError(t, err)

			// The full query must be consumed.
			assert.Equal(t, tt.query, a.Ungapped1())
			// The reference side must reduce to a contiguous substring.
			assert.True(t, strings.Contains(tt.ref, a.Ungapped2()),
				"%q not a substring of %q", a.Ungapped2(), tt.ref)
			assert.Equal(t, len(a.AlignedSeq1), len(a.AlignedSeq2))
		})
	}
}

func TestSemiGlobalEmptyReference(t *testing.T) {
	query := mustSeq(t, "ACG")
	ref := mustSeq(t, "")

	a, err := Align(query, ref, SimpleDNA(), SemiGlobal)
	require.NoError(t, err)
	assert.Equal(t, "ACG", a.AlignedSeq1)
	assert.Equal(t, "---", a.AlignedSeq2)
	assert.Equal(t, SimpleDNA().GapCost(3), a.Score)
}

func TestRoundTripInvariant(t *testing.T) {
	pairs := [][2]string{
		{"ATGCATGC", "ATGC"},
		{"ATGC", "ATGCATGC"},
		{"AAATTTAAA", "AAAAAA"},
		{"ACGTACGTACGT", "TGCATGCA"},
	}

	for _, mode := range []Mode{Global, SemiGlobal} {
		for _, p := range pairs {
			seq1 := mustSeq(t, p[0])
			seq2 := mustSeq(t, p[1])

			a, err := Align(seq1, seq2, DefaultDNA(), mode)
			require.NoError(t, err)

			require.Equal(t, len(a.AlignedSeq1), len(a.AlignedSeq2))
			assert.Equal(t, p[0], a.Ungapped1(), "mode %s", mode)
			if mode == Global {
				assert.Equal(t, p[1], a.Ungapped2())
			}
		}
	}
}

func TestTracebackDeterminism(t *testing.T) {
	seq1 := mustSeq(t, "ACGTTACGT")
	seq2 := mustSeq(t, "ACGTACGT")

	first, err := Align(seq1, seq2, DefaultDNA(), Global)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		a, err := Align(seq1, seq2, DefaultDNA(), Global)
		require.NoError(t, err)
		assert.Equal(t, first.AlignedSeq1, a.AlignedSeq1)
		assert.Equal(t, first.AlignedSeq2, a.AlignedSeq2)
		assert.Equal(t, first.Score, a.Score)
	}
}

func TestScoreOnlyMatchesFullLocal(t *testing.T) {
	seq1 := mustSeq(t, "ATGCATGCATGC")
	seq2 := mustSeq(t, "TGCATGGATC")

	score, err := ScoreOnly(seq1, seq2, DefaultDNA())
	require.NoError(t, err)

	a, err := Align(seq1, seq2, DefaultDNA(), Local)
	require.NoError(t, err)
	assert.Equal(t, a.Score, score)
}

func TestAlignmentCIGAR(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     string
	}{
		{"all match", "ATGC", "ATGC", "4M"},
		{"with mismatch", "ATGC", "ATGA", "3M1X"},
		{"with gap seq1", "AT-GC", "ATGGC", "2M1I2M"},
		{"with gap seq2", "ATGGC", "AT-GC", "2M1D2M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Alignment{AlignedSeq1: tt.aligned1, AlignedSeq2: tt.aligned2, Mode: Global}
			assert.Equal(t, tt.want, a.ToCIGAR())
		})
	}
}

func TestGapOpenings(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     int
	}{
		{"no gaps", "ATGC", "ATGC", 0},
		{"one gap", "AT-GC", "ATGGC", 1},
		{"one run of two", "AT--GC", "ATGGGC", 1},
		{"runs in both rows", "AT-GC-", "ATGG-C", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Alignment{AlignedSeq1: tt.aligned1, AlignedSeq2: tt.aligned2, Mode: Global}
			assert.Equal(t, tt.want, a.GapOpenings())
		})
	}
}

func BenchmarkAlignGlobal(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	seq1, _ := sequence.New(s1)
	seq2, _ := sequence.New(s2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Align(seq1, seq2, DefaultDNA(), Global)
	}
}

func BenchmarkAlignLocal(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	seq1, _ := sequence.New(s1)
	seq2, _ := sequence.New(s2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Align(seq1, seq2, DefaultDNA(), Local)
	}
}

func BenchmarkScoreOnly(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	seq1, _ := sequence.New(s1)
	seq2, _ := sequence.New(s2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ScoreOnly(seq1, seq2, DefaultDNA())
	}
}
