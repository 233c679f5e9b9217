// Package seqeron provides a high-level API for sequence alignment and
// indexing.
//
// This package exposes the core engine through a simple, easy-to-use
// API for common alignment operations.
//
// Example usage:
//
//	seq1, err := seqeron.NewSequence("ATGCATGC")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := seqeron.AlignGlobal(seq1, seq2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ToCIGAR())
package seqeron

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seqeron/seqeron-go/internal/alignment"
	"github.com/seqeron/seqeron-go/internal/anchor"
	"github.com/seqeron/seqeron-go/internal/kmer"
	"github.com/seqeron/seqeron-go/internal/msa"
	"github.com/seqeron/seqeron-go/internal/sequence"
	"github.com/seqeron/seqeron-go/internal/stats"
	"github.com/seqeron/seqeron-go/internal/suffixtree"
)

// Re-export types for convenience
type (
	Sequence       = sequence.Sequence
	SequenceType   = sequence.Type
	Alignment      = alignment.Alignment
	ScoringMatrix  = alignment.ScoringMatrix
	Mode           = alignment.Mode
	SuffixTree     = suffixtree.SuffixTree
	Position       = suffixtree.Position
	Repeat         = suffixtree.Repeat
	Anchor         = anchor.Anchor
	AnchorChain    = anchor.Chain
	MSAResult      = msa.Result
	MSAOptions     = msa.Options
	KMerCounter    = kmer.Counter
	KMerCount      = kmer.KMerCount
	AlignmentStats = stats.AlignmentStats
)

// Constants
const (
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Protein = sequence.Protein
	Unknown = sequence.Unknown

	Local      = alignment.Local
	Global     = alignment.Global
	SemiGlobal = alignment.SemiGlobal
)

// NewSequence creates a new DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// NewRNASequence creates a new RNA sequence.
func NewRNASequence(bases string) (*Sequence, error) {
	return sequence.WithMetadata(bases, "", "", sequence.RNA)
}

// NewProteinSequence creates a new protein sequence.
func NewProteinSequence(bases string) (*Sequence, error) {
	return sequence.WithMetadata(bases, "", "", sequence.Protein)
}

// Align performs an affine-gap alignment in the given mode. A nil
// scoring matrix selects the default DNA scheme.
func Align(seq1, seq2 *Sequence, scoring *ScoringMatrix, mode Mode) (*Alignment, error) {
	return alignment.Align(seq1, seq2, scoring, mode)
}

// AlignLocal performs local alignment between two sequences.
func AlignLocal(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.Align(seq1, seq2, nil, alignment.Local)
}

// AlignGlobal performs global alignment between two sequences.
func AlignGlobal(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.Align(seq1, seq2, nil, alignment.Global)
}

// AlignSemiGlobal aligns all of seq2 against a window of seq1.
func AlignSemiGlobal(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.Align(seq1, seq2, nil, alignment.SemiGlobal)
}

// AlignScore returns the best local alignment score without a traceback.
func AlignScore(seq1, seq2 *Sequence, scoring *ScoringMatrix) (int, error) {
	return alignment.ScoreOnly(seq1, seq2, scoring)
}

// DefaultScoring returns the default DNA scoring matrix.
func DefaultScoring() *ScoringMatrix {
	return alignment.DefaultDNA()
}

// NewScoring creates a validated scoring matrix.
func NewScoring(match, mismatch, gapOpen, gapExtend int) (*ScoringMatrix, error) {
	return alignment.NewScoringMatrix(match, mismatch, gapOpen, gapExtend)
}

// MultipleAlign aligns a set of sequences, using shared anchors to
// accelerate the alignment when the sequences are related.
func MultipleAlign(seqs []*Sequence, scoring *ScoringMatrix) (*MSAResult, error) {
	return msa.Align(seqs, scoring)
}

// MultipleAlignClassic aligns a set of sequences with the plain
// center-star strategy, without anchor acceleration.
func MultipleAlignClassic(seqs []*Sequence, scoring *ScoringMatrix) (*MSAResult, error) {
	return msa.AlignClassic(seqs, scoring)
}

// MultipleAlignWithOptions aligns a set of sequences with explicit
// anchoring options.
func MultipleAlignWithOptions(seqs []*Sequence, opts MSAOptions) (*MSAResult, error) {
	return msa.AlignWithOptions(seqs, opts)
}

// BuildIndex builds a generalized suffix tree over the sequences.
func BuildIndex(seqs []*Sequence) (*SuffixTree, error) {
	return suffixtree.Build(seqs)
}

// FindOccurrences returns every position of pattern across the indexed
// sequences, ordered by sequence then offset.
func FindOccurrences(tree *SuffixTree, pattern string) []Position {
	return tree.Occurrences(pattern)
}

// FindAnchors finds the best non-crossing chain of substrings shared by
// all indexed sequences.
func FindAnchors(tree *SuffixTree, minLength int) (*AnchorChain, error) {
	return anchor.FindChain(tree, anchor.Options{MinLength: minLength})
}

// CommonSubstrings lists maximal substrings of at least minLen bases
// occurring in at least minSeqs of the indexed sequences.
func CommonSubstrings(tree *SuffixTree, minLen, minSeqs int) []*Repeat {
	return tree.CommonSubstrings(minLen, minSeqs)
}

// CountKMers counts k-mers in a sequence.
func CountKMers(seq *Sequence, k int) (*KMerCounter, error) {
	return kmer.CountKMers(seq, k)
}

// SharedKMers finds k-mers shared between two sequences.
func SharedKMers(seq1, seq2 *Sequence, k int) ([]string, error) {
	return kmer.SharedKMers(seq1, seq2, k)
}

// SequenceSetStats calculates statistics for multiple sequences.
func SequenceSetStats(sequences []*Sequence) (*stats.SequenceSetStats, error) {
	return stats.FromSequences(sequences)
}

// CalculateStats calculates column statistics for a pairwise alignment.
func CalculateStats(a *Alignment) (*AlignmentStats, error) {
	return stats.FromAlignment(a)
}

// FormatAlignment renders a pairwise alignment in blocks of lineWidth
// columns with a match indicator line.
func FormatAlignment(a *Alignment, lineWidth int) (string, error) {
	return stats.FormatAlignment(a, lineWidth)
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	scanner := bufio.NewScanner(r)

	var currentID, currentDesc string
	var currentBases strings.Builder
	inRecord := false

	flushSequence := func() error {
		if !inRecord {
			return nil
		}
		seq, err := sequence.WithMetadata(
			currentBases.String(),
			currentID,
			currentDesc,
			sequence.DNA,
		)
		if err != nil {
			return err
		}
		sequences = append(sequences, seq)
		currentBases.Reset()
		inRecord = false
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			// Flush previous sequence
			if err := flushSequence(); err != nil {
				return nil, err
			}

			// Parse header
			header := line[1:]
			parts := strings.SplitN(header, " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
			inRecord = true
		} else {
			currentBases.WriteString(line)
		}
	}

	// Flush last sequence
	if err := flushSequence(); err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sequences, nil
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	for _, seq := range sequences {
		_, err := file.WriteString(seq.ToFASTA())
		if err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}

	return nil
}

// Version returns the Seqeron version.
func Version() string {
	return "1.0.0"
}

// Info returns information about Seqeron.
func Info() string {
	return fmt.Sprintf(`Seqeron v%s - Sequence Alignment Engine

A Go library for pairwise and multiple sequence alignment.

Features:
  - Affine-gap pairwise alignment (local, global, semi-global)
  - Generalized suffix tree indexing with online construction
  - Substring queries and occurrence listing
  - Anchor chaining across sequence sets
  - Anchor-accelerated multiple sequence alignment
  - Consensus calling and alignment statistics
  - FASTA file parsing

For more information, see: https://github.com/seqeron/seqeron-go
`, Version())
}
