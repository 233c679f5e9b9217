// Package stats provides statistical summaries for alignments and
// sequence collections.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seqeron/seqeron-go/internal/alignment"
	"github.com/seqeron/seqeron-go/internal/msa"
	"github.com/seqeron/seqeron-go/internal/sequence"
)

// AlignmentStats summarizes a pairwise alignment column by column.
type AlignmentStats struct {
	Length          int
	Matches         int
	Mismatches      int
	GapColumns      int
	GapOpenings     int
	Score           int
	PercentIdentity float64
}

// FromAlignment calculates column statistics for a pairwise alignment.
// An empty alignment yields all-zero stats.
func FromAlignment(a *alignment.Alignment) (*AlignmentStats, error) {
	if a == nil {
		return nil, alignment.ErrNilAlignment
	}
	if a.IsEmpty() {
		return &AlignmentStats{}, nil
	}

	s := &AlignmentStats{
		Length:      len(a.AlignedSeq1),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		GapColumns:  a.GapCount(),
		GapOpenings: a.GapOpenings(),
		Score:       a.Score,
	}
	if s.Length > 0 {
		s.PercentIdentity = float64(s.Matches) / float64(s.Length) * 100
	}
	return s, nil
}

func (s *AlignmentStats) String() string {
	return fmt.Sprintf(`AlignmentStats {
  length: %d
  matches: %d
  mismatches: %d
  gap columns: %d
  gap openings: %d
  score: %d
  identity: %.1f%%
}`, s.Length, s.Matches, s.Mismatches, s.GapColumns,
		s.GapOpenings, s.Score, s.PercentIdentity)
}

// FormatAlignment renders a pairwise alignment in blocks of lineWidth
// columns with a match indicator line between the two rows: '|' for a
// match, '.' for a mismatch and a space under gap columns.
func FormatAlignment(a *alignment.Alignment, lineWidth int) (string, error) {
	if a == nil {
		return "", alignment.ErrNilAlignment
	}
	if a.IsEmpty() {
		return "", nil
	}
	if lineWidth <= 0 {
		lineWidth = 60
	}

	indicator := make([]byte, len(a.AlignedSeq1))
	for i := range a.AlignedSeq1 {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		switch {
		case c1 == alignment.Gap || c2 == alignment.Gap:
			indicator[i] = ' '
		case c1 == c2:
			indicator[i] = '|'
		default:
			indicator[i] = '.'
		}
	}

	var b strings.Builder
	for start := 0; start < len(a.AlignedSeq1); start += lineWidth {
		end := start + lineWidth
		if end > len(a.AlignedSeq1) {
			end = len(a.AlignedSeq1)
		}
		fmt.Fprintf(&b, "seq1  %s\n", a.AlignedSeq1[start:end])
		fmt.Fprintf(&b, "      %s\n", indicator[start:end])
		fmt.Fprintf(&b, "seq2  %s\n", a.AlignedSeq2[start:end])
		if end < len(a.AlignedSeq1) {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// MultipleAlignmentStats summarizes a multiple alignment result.
type MultipleAlignmentStats struct {
	NumSequences      int
	Width             int
	TotalScore        int
	GapFraction       float64
	ConservedColumns  int
	ConservedFraction float64
}

// FromMultipleAlignment calculates column statistics for an MSA result.
// A conserved column holds the same non-gap character in every row.
func FromMultipleAlignment(r *msa.Result) (*MultipleAlignmentStats, error) {
	if r == nil {
		return nil, alignment.ErrNilAlignment
	}

	s := &MultipleAlignmentStats{
		NumSequences: len(r.AlignedSequences),
		Width:        r.Width(),
		TotalScore:   r.TotalScore,
	}
	if s.NumSequences == 0 || s.Width == 0 {
		return s, nil
	}

	gaps := 0
	for col := 0; col < s.Width; col++ {
		conserved := true
		first := r.AlignedSequences[0][col]
		for _, row := range r.AlignedSequences {
			c := row[col]
			if c == alignment.Gap {
				gaps++
			}
			if c != first || c == alignment.Gap {
				conserved = false
			}
		}
		if conserved {
			s.ConservedColumns++
		}
	}
	s.GapFraction = float64(gaps) / float64(s.NumSequences*s.Width)
	s.ConservedFraction = float64(s.ConservedColumns) / float64(s.Width)
	return s, nil
}

func (s *MultipleAlignmentStats) String() string {
	return fmt.Sprintf(`MultipleAlignmentStats {
  sequences: %d
  width: %d
  total score: %d
  gap fraction: %.1f%%
  conserved columns: %d (%.1f%%)
}`, s.NumSequences, s.Width, s.TotalScore,
		s.GapFraction*100, s.ConservedColumns, s.ConservedFraction*100)
}

// SequenceSetStats represents aggregated statistics for multiple sequences.
type SequenceSetStats struct {
	Count         int
	TotalBases    int
	MinLength     int
	MaxLength     int
	MeanLength    float64
	MedianLength  int
	MeanGCContent float64
	N50           int
}

// FromSequences calculates statistics for a collection of sequences.
func FromSequences(sequences []*sequence.Sequence) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	count := len(sequences)
	lengths := make([]int, count)
	totalBases := 0

	for i, seq := range sequences {
		if seq == nil {
			return nil, fmt.Errorf("sequence %d is nil", i)
		}
		lengths[i] = seq.Len()
		totalBases += seq.Len()
	}

	minLen := lengths[0]
	maxLen := lengths[0]
	for _, l := range lengths {
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	meanLen := float64(totalBases) / float64(count)

	sortedLengths := make([]int, count)
	copy(sortedLengths, lengths)
	sort.Ints(sortedLengths)

	mid := count / 2
	var medianLen int
	if count%2 == 0 {
		medianLen = (sortedLengths[mid-1] + sortedLengths[mid]) / 2
	} else {
		medianLen = sortedLengths[mid]
	}

	gcSum := 0.0
	for _, seq := range sequences {
		gcSum += seq.GCContent()
	}
	meanGC := gcSum / float64(count)

	// N50: length where half the bases are in sequences at least that long.
	sortedDesc := make([]int, count)
	copy(sortedDesc, lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sortedDesc)))

	halfTotal := totalBases / 2
	runningSum := 0
	n50 := sortedDesc[0]
	for _, length := range sortedDesc {
		runningSum += length
		if runningSum >= halfTotal {
			n50 = length
			break
		}
	}

	return &SequenceSetStats{
		Count:         count,
		TotalBases:    totalBases,
		MinLength:     minLen,
		MaxLength:     maxLen,
		MeanLength:    meanLen,
		MedianLength:  medianLen,
		MeanGCContent: meanGC,
		N50:           n50,
	}, nil
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf(`SequenceSetStats {
  count: %d
  total_bases: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  mean GC: %.1f%%
  N50: %d
}`, s.Count, s.TotalBases, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.MeanGCContent*100, s.N50)
}
