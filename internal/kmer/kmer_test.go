package kmer

import (
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

func TestNewCounter(t *testing.T) {
	c, err := NewCounter(3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.K())

	_, err = NewCounter(0)
	require.Error(t, err)
	_, err = NewCounter(-1)
	require.Error(t, err)
}

func TestCountKMers(t *testing.T) {
	c, err := CountKMers(mustSeq(t, "ATGCATGC"), 4)
	require.NoError(t, err)

	assert.Equal(t, 2, c.GetCount("ATGC"))
	assert.Equal(t, 1, c.GetCount("TGCA"))
	assert.Equal(t, 0, c.GetCount("TTTT"))
	assert.Equal(t, 4, c.UniqueCount())
	assert.Equal(t, 5, c.Total())
}

func TestCountKMersShortSequence(t *testing.T) {
	c, err := CountKMers(mustSeq(t, "AT"), 4)
	require.NoError(t, err)
	assert.Zero(t, c.Total())
	assert.Zero(t, c.UniqueCount())

	_, err = CountKMers(nil, 4)
	require.Error(t, err)
}

func TestMostFrequent(t *testing.T) {
	c, err := CountKMers(mustSeq(t, "AAATAAAT"), 3)
	require.NoError(t, err)

	top := c.MostFrequent(2)
	require.Len(t, top, 2)
	assert.Equal(t, KMerCount{KMer: "AAA", Count: 2}, top[0])
	assert.Equal(t, KMerCount{KMer: "AAT", Count: 2}, top[1])

	all := c.MostFrequent(100)
	assert.Equal(t, c.UniqueCount(), len(all))
}

func TestSharedKMers(t *testing.T) {
	shared, err := SharedKMers(mustSeq(t, "ATGCAT"), mustSeq(t, "GCATGG"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"ATG", "CAT", "GCA"}, shared)

	none, err := SharedKMers(mustSeq(t, "AAAA"), mustSeq(t, "TTTT"), 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSharedAcross(t *testing.T) {
	tests := []struct {
		name  string
		bases []string
		k     int
		want  bool
	}{
		{"common block", []string{"TTATGCATGG", "ATGCAAA", "CCATGCA"}, 4, true},
		{"no common k-mer", []string{"AAAAAA", "TTTTTT", "CCCCCC"}, 4, false},
		{"pairwise only", []string{"ATGCAA", "ATGCTT", "GGGGGG"}, 4, false},
		{"one too short", []string{"ATGCATGC", "ATG"}, 4, false},
		{"single sequence", []string{"ATGC"}, 4, true},
		{"empty list", nil, 4, false},
		{"k not positive", []string{"ATGC"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs := make([]*sequence.Sequence, len(tt.bases))
			for i, b := range tt.bases {
				seqs[i] = mustSeq(t, b)
			}
			assert.Equal(t, tt.want, SharedAcross(seqs, tt.k))
		})
	}
}

func BenchmarkSharedAcross(b *testing.B) {
	seqs := make([]*sequence.Sequence, 3)
	for i, s := range []string{"TTATGCATGGCCTAGG", "ATGCATGGCCTAAAC", "CATGCATGGCCTAT"} {
		seqs[i], _ = sequence.New(s)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SharedAcross(seqs, 8)
	}
}
